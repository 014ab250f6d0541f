package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/elegance/jewelry-catalog/internal/core/catalog"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/storefront/cart"
	"github.com/elegance/jewelry-catalog/internal/storefront/checkout"
	"github.com/elegance/jewelry-catalog/internal/storefront/client"
	"github.com/elegance/jewelry-catalog/pkg/logger"
)

var errOutOfStock = errors.New("product is out of stock")

func (s *shop) productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "list the catalog, filtered locally",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "text matched against name and description"},
			&cli.StringFlag{Name: "category", Value: domain.AllCategories},
			&cli.StringSliceFlag{Name: "tag", Usage: "tag to match (repeatable, any of)"},
			&cli.Float64Flag{Name: "min", Value: catalog.DefaultMinPrice},
			&cli.Float64Flag{Name: "max", Value: catalog.DefaultMaxPrice},
		},
		Action: func(c *cli.Context) error {
			all, err := s.api.Products(c.Context, domain.ProductFilter{})
			if err != nil {
				return err
			}

			state := catalog.NewState()
			state.Search = c.String("search")
			state.Category = c.String("category")
			for _, tag := range c.StringSlice("tag") {
				state.ToggleTag(tag)
			}
			state.Price = catalog.PriceRange{Min: c.Float64("min"), Max: c.Float64("max")}

			matched := state.Apply(all)

			w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tTAGS\tSTOCK")
			for _, p := range matched {
				fmt.Fprintf(w, "%s\t%s\t₹%s\t%s\t%s\t%s\n",
					p.ID, p.Name, s.amount(p.Price), p.Category, strings.Join(p.Tags, ","), stockLabel(p.InStock))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if state.HasActive() || state.Search != "" {
				fmt.Fprintf(s.out, "%d of %d products match\n", len(matched), len(all))
			} else {
				fmt.Fprintf(s.out, "%d products\n", len(all))
			}
			return nil
		},
	}
}

func (s *shop) productCommand() *cli.Command {
	return &cli.Command{
		Name:      "product",
		Usage:     "show one product",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id, err := requireArg(c, 0, "product id")
			if err != nil {
				return err
			}
			p, err := s.api.Product(c.Context, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "%s\n₹%s  %s  %s\n", p.Name, s.amount(p.Price), p.Category, stockLabel(p.InStock))
			if len(p.Tags) > 0 {
				fmt.Fprintf(s.out, "tags: %s\n", strings.Join(p.Tags, ", "))
			}
			if p.Image != "" {
				fmt.Fprintf(s.out, "image: %s\n", p.Image)
			}
			fmt.Fprintf(s.out, "\n%s\n", p.Description)
			return nil
		},
	}
}

func (s *shop) filtersCommand() *cli.Command {
	return &cli.Command{
		Name:  "filters",
		Usage: "list categories, tags and price presets",
		Action: func(c *cli.Context) error {
			f, err := s.api.Filters(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "categories: %s\n", strings.Join(f.Categories, ", "))
			fmt.Fprintf(s.out, "tags: %s\n", strings.Join(f.Tags, ", "))
			fmt.Fprintln(s.out, "price presets:")
			for _, p := range catalog.PricePresets {
				fmt.Fprintf(s.out, "  %-22s --min %.0f --max %.0f\n", p.Label, p.Range.Min, p.Range.Max)
			}
			return nil
		},
	}
}

func (s *shop) cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "manage the cart",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{&cli.IntFlag{Name: "qty", Value: 1}},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, 0, "product id")
					if err != nil {
						return err
					}
					p, err := s.api.Product(c.Context, id)
					if err != nil {
						return err
					}
					if !p.InStock {
						return errOutOfStock
					}
					return s.updateCart(c, func(ct *cart.Cart) error {
						return ct.Add(cart.SnapshotOf(*p), c.Int("qty"))
					})
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, 0, "product id")
					if err != nil {
						return err
					}
					return s.updateCart(c, func(ct *cart.Cart) error { return ct.Remove(id) })
				},
			},
			{
				Name:      "decrement",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, 0, "product id")
					if err != nil {
						return err
					}
					return s.updateCart(c, func(ct *cart.Cart) error { return ct.Decrement(id) })
				},
			},
			{
				Name:      "set",
				ArgsUsage: "<id> <quantity>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, 0, "product id")
					if err != nil {
						return err
					}
					raw, err := requireArg(c, 1, "quantity")
					if err != nil {
						return err
					}
					qty, err := strconv.Atoi(raw)
					if err != nil {
						return fmt.Errorf("quantity must be a whole number, got %q", raw)
					}
					return s.updateCart(c, func(ct *cart.Cart) error { return ct.SetQuantity(id, qty) })
				},
			},
			{
				Name: "clear",
				Action: func(c *cli.Context) error {
					return s.updateCart(c, func(ct *cart.Cart) error {
						ct.Clear()
						return nil
					})
				},
			},
			{
				Name: "show",
				Action: func(c *cli.Context) error {
					sess, err := s.openSession(c)
					if err != nil {
						return err
					}
					s.printCart(sess.Cart())
					return nil
				},
			},
		},
	}
}

func (s *shop) updateCart(c *cli.Context, fn func(*cart.Cart) error) error {
	sess, err := s.openSession(c)
	if err != nil {
		return err
	}
	if err := sess.Update(c.Context, func(ct *cart.Cart, _ *cart.Wishlist) error { return fn(ct) }); err != nil {
		return err
	}
	s.printCart(sess.Cart())
	return nil
}

func (s *shop) printCart(ct *cart.Cart) {
	if ct.IsEmpty() {
		fmt.Fprintln(s.out, "cart is empty")
		return
	}
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tLINE TOTAL")
	for _, l := range ct.Lines() {
		fmt.Fprintf(w, "%s\t%s\t%d\t₹%s\n", l.ID, l.Name, l.Quantity, s.composer.FormatAmount(l.Total()))
	}
	_ = w.Flush()
	fmt.Fprintf(s.out, "%d items, total ₹%s\n", ct.Count(), s.composer.FormatAmount(ct.Total()))
}

func (s *shop) wishlistCommand() *cli.Command {
	return &cli.Command{
		Name:  "wishlist",
		Usage: "manage the wishlist",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, 0, "product id")
					if err != nil {
						return err
					}
					p, err := s.api.Product(c.Context, id)
					if err != nil {
						return err
					}
					return s.updateWishlist(c, func(w *cart.Wishlist) { w.Add(cart.SnapshotOf(*p)) })
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, 0, "product id")
					if err != nil {
						return err
					}
					return s.updateWishlist(c, func(w *cart.Wishlist) { w.Remove(id) })
				},
			},
			{
				Name: "show",
				Action: func(c *cli.Context) error {
					sess, err := s.openSession(c)
					if err != nil {
						return err
					}
					s.printWishlist(sess.Wishlist())
					return nil
				},
			},
		},
	}
}

func (s *shop) updateWishlist(c *cli.Context, fn func(*cart.Wishlist)) error {
	sess, err := s.openSession(c)
	if err != nil {
		return err
	}
	if err := sess.Update(c.Context, func(_ *cart.Cart, w *cart.Wishlist) error {
		fn(w)
		return nil
	}); err != nil {
		return err
	}
	s.printWishlist(sess.Wishlist())
	return nil
}

func (s *shop) printWishlist(w *cart.Wishlist) {
	if w.Len() == 0 {
		fmt.Fprintln(s.out, "wishlist is empty")
		return
	}
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSTOCK")
	for _, item := range w.Items() {
		fmt.Fprintf(tw, "%s\t%s\t₹%s\t%s\n", item.ID, item.Name, s.amount(item.Price), stockLabel(item.InStock))
	}
	_ = tw.Flush()
}

func (s *shop) checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "send the cart as a WhatsApp order and empty it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "phone", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "address", Required: true},
			&cli.StringFlag{Name: "pincode", Required: true},
			&cli.StringFlag{Name: "notes"},
		},
		Action: func(c *cli.Context) error {
			sess, err := s.openSession(c)
			if err != nil {
				return err
			}

			svc := checkout.NewService(s.composer, s.api, checkout.WriterDispatcher{W: s.out}, logger.Component("checkout"))
			order, err := svc.Checkout(c.Context, sess, checkout.Customer{
				Name:    c.String("name"),
				Phone:   c.String("phone"),
				Email:   c.String("email"),
				Address: c.String("address"),
				Pincode: c.String("pincode"),
				Notes:   c.String("notes"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(s.out, "Open the link above to send your order of %d items (₹%s). Cart cleared.\n", order.Units, s.composer.FormatAmount(order.Total))
			return nil
		},
	}
}

func (s *shop) statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "show whether the store is taking orders",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "watch", Usage: "keep polling and report changes until interrupted"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("watch") {
				st, err := s.api.StoreStatus(c.Context)
				if err != nil {
					return err
				}
				s.printStatus(*st)
				return nil
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			poller := client.NewStatusPoller(s.api, s.cfg.PollInterval, logger.Component("status-poller"))
			poller.OnChange(s.printStatus)
			poller.Run(ctx)
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		},
	}
}

func (s *shop) printStatus(st domain.StoreStatus) {
	if st.Online() {
		fmt.Fprintln(s.out, "store is online, orders are open")
		return
	}
	fmt.Fprintln(s.out, "store is offline, checkout is paused (browsing still works)")
}

func (s *shop) amount(price float64) string {
	return s.composer.FormatAmount(decimal.NewFromFloat(price))
}

func stockLabel(inStock bool) string {
	if inStock {
		return "in stock"
	}
	return "out of stock"
}

func requireArg(c *cli.Context, i int, name string) (string, error) {
	v := strings.TrimSpace(c.Args().Get(i))
	if v == "" {
		return "", fmt.Errorf("missing %s", name)
	}
	return v, nil
}
