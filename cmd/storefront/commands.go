package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	domcart "zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/storefront/checkout"
	"zaylux-store/internal/storefront/preferences"
	"zaylux-store/internal/storefront/remote"
	"zaylux-store/internal/storefront/session"
	"zaylux-store/internal/storefront/tracking"
)

type command func(ctx context.Context, fs *flag.FlagSet, args []string) error

type cli struct {
	session *session.Session
	out     io.Writer
}

func (c *cli) commands() map[string]command {
	return map[string]command{
		"products": c.products,
		"add":      c.add,
		"update":   c.update,
		"remove":   c.remove,
		"cart":     c.showCart,
		"clear":    c.clear,
		"coupon":   c.coupon,
		"checkout": c.checkout,
		"track":    c.track,
		"notify":   c.notify,
		"lang":     c.lang,
	}
}

func (c *cli) name(en, ar string) string {
	return catalog.LocalizedText{EN: en, AR: ar}.In(string(c.session.Prefs.Language()))
}

func (c *cli) products(ctx context.Context, fs *flag.FlagSet, args []string) error {
	category := fs.String("category", "", "filter by category")
	if err := fs.Parse(args); err != nil {
		return err
	}
	products, err := c.session.Catalog.ListProducts(ctx, *category)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, c.name(p.NameEN, p.NameAR), p.Category, p.Price.Format(), p.Quantity)
	}
	return w.Flush()
}

func (c *cli) add(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.String("id", "", "product id")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p, err := c.session.AddProduct(ctx, *id, *qty)
	if errs.Is(err, session.ErrOutOfStock) {
		fmt.Fprintf(c.out, "%s is out of stock, run notify -id %s -phone <phone> to hear when it is back\n", c.name(p.NameEN, p.NameAR), p.ID)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "added %d x %s\n", *qty, c.name(p.NameEN, p.NameAR))
	return c.printCart()
}

func (c *cli) update(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.String("id", "", "product id")
	qty := fs.Int("qty", 1, "new quantity, 0 removes the line")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.session.Cart.UpdateQuantity(ctx, *id, *qty); err != nil {
		return err
	}
	return c.printCart()
}

func (c *cli) remove(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.session.Cart.RemoveItem(ctx, *id); err != nil {
		return err
	}
	return c.printCart()
}

func (c *cli) showCart(_ context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	return c.printCart()
}

func (c *cli) clear(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.session.Cart.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "cart cleared")
	return nil
}

func (c *cli) coupon(ctx context.Context, fs *flag.FlagSet, args []string) error {
	code := fs.String("code", "", "coupon code")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v, err := c.session.Checkout.ApplyCoupon(ctx, *code)
	if err != nil {
		fmt.Fprintln(c.out, "Failed to validate coupon")
		return err
	}
	fmt.Fprintln(c.out, v.Message)
	c.printTotals(c.session.Checkout.Totals())
	return nil
}

func (c *cli) checkout(ctx context.Context, fs *flag.FlagSet, args []string) error {
	var info checkout.CustomerInfo
	fs.StringVar(&info.Name, "name", "", "full name")
	fs.StringVar(&info.Phone, "phone", "", "phone number")
	fs.StringVar(&info.City, "city", "", "city")
	fs.StringVar(&info.Address, "address", "", "delivery address")
	code := fs.String("coupon", "", "coupon code to apply first")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *code != "" {
		v, err := c.session.Checkout.ApplyCoupon(ctx, *code)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, v.Message)
		if !v.Valid {
			return errs.Newf("coupon %q was not applied, order not placed", *code)
		}
	}
	c.printTotals(c.session.Checkout.Totals())

	placement, err := c.session.Checkout.Submit(ctx, info)
	if err != nil {
		fmt.Fprintln(c.out, checkout.UserMessage(err))
		return err
	}
	fmt.Fprintf(c.out, "Order placed successfully! Your order number is %s\n", placement.PublicOrderID)
	return nil
}

func (c *cli) track(ctx context.Context, fs *flag.FlagSet, args []string) error {
	orderID := fs.String("order", "", "public order id")
	phone := fs.String("phone", "", "phone used at checkout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	order, err := c.session.Tracker.Track(ctx, *orderID, *phone)
	if errs.Is(err, tracking.ErrOrderNotFound) {
		fmt.Fprintln(c.out, "Order not found")
		return nil
	}
	if err != nil {
		return err
	}
	c.printTrackedOrder(order)
	return nil
}

func (c *cli) notify(ctx context.Context, fs *flag.FlagSet, args []string) error {
	id := fs.String("id", "", "product id")
	phone := fs.String("phone", "", "phone to notify")
	name := fs.String("name", "", "optional name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := c.session.NotifyWhenBack(ctx, *id, *phone, *name); err != nil {
		var re *remote.RemoteError
		if errs.As(err, &re) && re.Message != "" {
			fmt.Fprintln(c.out, re.Message)
		}
		return err
	}
	fmt.Fprintln(c.out, "We will let you know when it is back in stock")
	return nil
}

func (c *cli) lang(ctx context.Context, fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(c.out, c.session.Prefs.Language())
		return nil
	}
	lang, err := preferences.ParseLanguage(fs.Arg(0))
	if err != nil {
		return err
	}
	return c.session.Prefs.SetLanguage(ctx, lang)
}

func (c *cli) printCart() error {
	items := c.session.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(c.out, "cart is empty")
		return nil
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQTY\tPRICE\tLINE")
	for _, it := range items {
		printLine(w, c.name(it.NameEN, it.NameAR), it)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%d items, subtotal %s\n", c.session.Cart.TotalCount(), c.session.Cart.Subtotal().Format())
	return nil
}

func printLine(w io.Writer, name string, it domcart.LineItem) {
	fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ProductID, name, it.Quantity, it.Price.Format(), it.LineTotal().Format())
}

func (c *cli) printTotals(t checkout.Totals) {
	fmt.Fprintf(c.out, "subtotal %s, discount %s, total %s\n", t.Subtotal.Format(), t.Discount.Format(), t.Total.Format())
	if t.CouponStale {
		fmt.Fprintln(c.out, "note: the cart changed after the coupon was applied")
	}
}

func (c *cli) printTrackedOrder(o *remote.TrackedOrder) {
	fmt.Fprintf(c.out, "order %s: %s (%s)\n", o.PublicID, o.Status, o.PaymentMethod)
	fmt.Fprintf(c.out, "placed %s\n", o.CreatedAt.Format("2006-01-02 15:04"))
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	for _, it := range o.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.name(it.NameEN, it.NameAR), it.Quantity, it.Price.Mul(it.Quantity).Format())
	}
	_ = w.Flush()
	fmt.Fprintf(c.out, "subtotal %s, discount %s, total %s\n", o.Subtotal.Format(), o.Discount.Format(), o.Total.Format())
}
