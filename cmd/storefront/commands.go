package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

func idArg(c *cli.Context, pos int, name string) (int64, error) {
	raw := c.Args().Get(pos)
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse the catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}},
					&cli.StringFlag{Name: "category", Aliases: []string{"c"}},
				},
				Action: func(c *cli.Context) error {
					products, err := appFrom(c).Catalog.ListProducts(c.Context, catalog.Filter{
						Search:   c.String("search"),
						Category: c.String("category"),
					})
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
					for _, p := range products {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
					}
					return tw.Flush()
				},
			},
			{
				Name:      "show",
				Usage:     "show one product",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, 0, "product id")
					if err != nil {
						return err
					}
					p, err := appFrom(c).Catalog.GetProduct(c.Context, id)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "%s (#%d)\n%s\nprice: %s\nstock: %d\ncategory: %s\n",
						p.Name, p.ID, p.Description, p.Price.StringFixed(2), p.Stock, p.Category)
					return nil
				},
			},
		},
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account and log in",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			u, err := appFrom(c).Register(c.Context, c.String("name"), c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "registered and logged in as %s <%s>\n", u.Name, u.Email)
			return nil
		},
	}
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "log in with email and password",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
		},
		Action: func(c *cli.Context) error {
			u, err := appFrom(c).Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "logged in as %s <%s> (%s)\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: func(c *cli.Context) error {
			if err := appFrom(c).Logout(c.Context); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, "logged out")
			return nil
		},
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the logged in user",
		Action: func(c *cli.Context) error {
			u, err := appFrom(c).CurrentUser(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%s <%s> role=%s id=%d\n", u.Name, u.Email, u.Role, u.ID)
			return nil
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "manage the shopping cart",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				ArgsUsage: "[--qty N] <product-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "qty", Aliases: []string{"q"}, Value: cart.DefaultQuantity},
				},
				Action: func(c *cli.Context) error {
					id, err := idArg(c, 0, "product id")
					if err != nil {
						return err
					}
					app := appFrom(c)
					if err := app.AddToCart(c.Context, id, c.Int("qty")); err != nil {
						return err
					}
					return printCart(c, app.Cart.Items())
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, 0, "product id")
					if err != nil {
						return err
					}
					app := appFrom(c)
					if err := app.Cart.RemoveItem(c.Context, id); err != nil {
						return err
					}
					return printCart(c, app.Cart.Items())
				},
			},
			{
				Name:      "update",
				ArgsUsage: "<product-id> <quantity>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, 0, "product id")
					if err != nil {
						return err
					}
					qty, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("invalid quantity %q", c.Args().Get(1))
					}
					app := appFrom(c)
					if err := app.Cart.UpdateQuantity(c.Context, id, qty); err != nil {
						return err
					}
					return printCart(c, app.Cart.Items())
				},
			},
			{
				Name: "show",
				Action: func(c *cli.Context) error {
					return printCart(c, appFrom(c).Cart.Items())
				},
			},
			{
				Name: "clear",
				Action: func(c *cli.Context) error {
					if err := appFrom(c).Cart.ClearCart(c.Context); err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, "cart cleared")
					return nil
				},
			},
		},
	}
}

func printCart(c *cli.Context, items []cart.Item) error {
	if len(items) == 0 {
		fmt.Fprintln(c.App.Writer, "cart is empty")
		return nil
	}
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tUNIT\tLINE")
	for _, it := range items {
		name := "?"
		if it.Product != nil {
			name = it.Product.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", it.ProductID, name, it.Quantity, it.UnitPrice().StringFixed(2), it.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", cart.TotalItems(items), cart.TotalAmount(items).StringFixed(2))
	return tw.Flush()
}

func checkoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "pay for the cart and place the order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "card", Required: true, Usage: "card number"},
			&cli.StringFlag{Name: "expiry", Usage: "MM/YY"},
			&cli.StringFlag{Name: "cvv"},
		},
		Action: func(c *cli.Context) error {
			res, err := appFrom(c).Checkout.Submit(c.Context, checkout.Payment{
				CardNumber: c.String("card"),
				Expiry:     c.String("expiry"),
				CVV:        c.String("cvv"),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "order #%d placed (payment %s), total %s\n",
				res.OrderID, res.PaymentReference, res.Order.TotalAmount.StringFixed(2))
			return nil
		},
	}
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "view your orders",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: func(c *cli.Context) error {
					orders, err := appFrom(c).Orders.ListMine(c.Context)
					if err != nil {
						return err
					}
					tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(tw, "ID\tDATE\tSTATUS\tITEMS\tTOTAL")
					for _, o := range orders {
						fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", o.ID, o.OrderDate.Format("2006-01-02 15:04"), o.Status, len(o.Items), o.TotalAmount.StringFixed(2))
					}
					return tw.Flush()
				},
			},
			{
				Name:      "show",
				ArgsUsage: "<order-id>",
				Action: func(c *cli.Context) error {
					id, err := idArg(c, 0, "order id")
					if err != nil {
						return err
					}
					o, err := appFrom(c).Orders.Get(c.Context, id)
					if err != nil {
						return err
					}
					return printOrder(c, o)
				},
			},
		},
	}
}

func printOrder(c *cli.Context, o order.Order) error {
	fmt.Fprintf(c.App.Writer, "order #%d  %s  %s\n", o.ID, o.Status, o.OrderDate.Format("2006-01-02 15:04"))
	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tQTY\tPRICE")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", it.ProductID, it.Name, it.Quantity, it.Price.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\t%s\n", o.TotalAmount.StringFixed(2))
	return tw.Flush()
}
