// Command storefront is the shopper-side client of the jewelry catalog: it
// browses and filters the catalog, keeps a cart and wishlist across runs and
// hands orders to WhatsApp.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
