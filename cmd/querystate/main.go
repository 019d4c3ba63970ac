// Command querystate decodes, normalizes and transforms storefront filter
// query strings from the terminal.
//
//	querystate decode 'size=M&size=&gender=men&size=M'
//	querystate toggle 'size=M&page=3' size L
//	querystate --encoding comma encode size=9 size=10 gender=men
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
