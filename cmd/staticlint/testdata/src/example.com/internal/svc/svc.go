package svc

import (
	"fmt"
	"log"
)

func Do() string {
	log.Println("started") // want "use the zap logger instead of the standard log package"
	fmt.Printf("%d\n", 1) // want `use the zap logger instead of fmt.Printf`
	return fmt.Sprintf("%d", 2)
}
