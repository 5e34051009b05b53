package main

import "github.com/clothstore/storefront/internal/cli"

func main() {
	cli.Execute()
}
