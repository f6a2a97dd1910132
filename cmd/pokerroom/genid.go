package main

import (
	"fmt"

	"github.com/lox/pokerroom/internal/gameid"
)

// GenIDCmd prints freshly generated session IDs, useful for smoke tests
// and for eyeballing the ID format.
type GenIDCmd struct {
	Count int `short:"n" kong:"default='1',help='Number of IDs to generate'"`
}

func (c *GenIDCmd) Run() error {
	for i := 0; i < c.Count; i++ {
		fmt.Println(gameid.New())
	}
	return nil
}
