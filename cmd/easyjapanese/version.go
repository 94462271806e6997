package main

import (
	"context"
	"fmt"

	"github.com/a-h/easyjapanese"
)

type VersionCommand struct {
}

func (c VersionCommand) Run(ctx context.Context) (err error) {
	fmt.Println(easyjapanese.Version)
	return nil
}
