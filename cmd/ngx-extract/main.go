package main

import "github.com/mvp-joe/ngx-extract/internal/cli"

func main() {
	cli.Execute()
}
