package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"medstore/m/internal/cart"
)

func (a *App) customerPanel(ctx context.Context) error {
	basket := cart.New()

	for {
		fmt.Fprintln(a.out, "\n--- Customer Menu ---")
		fmt.Fprintln(a.out, "1. Browse all medicines")
		fmt.Fprintln(a.out, "2. Search medicine by name")
		fmt.Fprintln(a.out, "3. Add medicine to cart (by ID)")
		fmt.Fprintln(a.out, "4. Remove item from cart")
		fmt.Fprintln(a.out, "5. View cart")
		fmt.Fprintln(a.out, "6. Checkout")
		fmt.Fprintln(a.out, "0. Back to Main Menu")

		choice, err := a.readInt("Choice: ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Fprintln(a.out, "Invalid choice.")
			continue
		}

		switch choice {
		case 1:
			err = a.browse()
		case 2:
			err = a.searchByName()
		case 3:
			err = a.addToCart(basket)
		case 4:
			err = a.removeFromCart(basket)
		case 5:
			a.viewCart(basket)
		case 6:
			err = a.checkoutCart(ctx, basket)
		case 0:
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice.")
		}
		if err != nil {
			return exitOnEOF(err)
		}
	}
}

func (a *App) browse() error {
	records, err := a.catalog.List()
	if err != nil {
		fmt.Fprintf(a.out, "Unable to load catalog: %v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "\n--- Medicine List ---")
	a.printCatalog(records)
	return nil
}

func (a *App) addToCart(basket *cart.Cart) error {
	id, err := a.readInt("Enter medicine ID to add: ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid ID.")
		return nil
	}
	med, err := a.catalog.FindByID(id)
	if err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return nil
	}
	if med.Quantity <= 0 {
		fmt.Fprintln(a.out, "Out of stock.")
		return nil
	}
	fmt.Fprintf(a.out, "Available quantity: %d\n", med.Quantity)
	qty, err := a.readInt("Enter desired quantity: ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid quantity.")
		return nil
	}
	if err := basket.AddItem(med, qty); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return nil
	}
	fmt.Fprintf(a.out, "%d x %s added to cart.\n", qty, med.Name)
	return nil
}

func (a *App) removeFromCart(basket *cart.Cart) error {
	if basket.Len() == 0 {
		fmt.Fprintln(a.out, "Cart is empty.")
		return nil
	}
	a.viewCart(basket)
	id, err := a.readInt("Enter medicine ID to remove (0 to cancel): ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid ID.")
		return nil
	}
	if id == 0 {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	qty, err := a.readInt("Quantity to remove (0 to remove all): ")
	if err != nil {
		fmt.Fprintln(a.out, "Invalid quantity.")
		return nil
	}
	if err := basket.RemoveItem(id, qty); err != nil {
		fmt.Fprintf(a.out, "%v\n", err)
		return nil
	}
	fmt.Fprintln(a.out, "Cart updated.")
	return nil
}

func (a *App) viewCart(basket *cart.Cart) {
	if basket.Len() == 0 {
		fmt.Fprintln(a.out, "Cart is empty.")
		return
	}
	fmt.Fprintln(a.out, "\n--- Your Cart ---")
	for i, line := range basket.Lines() {
		fmt.Fprintf(a.out, "%d) %s | Unit: %.2f | Qty: %d | Line: %.2f\n",
			i+1, line.Name, line.UnitPrice, line.Quantity, line.LineTotal())
	}
	fmt.Fprintf(a.out, "Subtotal: %.2f\n", basket.Subtotal())
}

func (a *App) checkoutCart(ctx context.Context, basket *cart.Cart) error {
	if basket.Len() == 0 {
		fmt.Fprintln(a.out, "Cart empty — add items first.")
		return nil
	}

	review := a.engine.Review(basket)
	fmt.Fprintln(a.out, "\n--- Invoice ---")
	for i, line := range review.Lines {
		fmt.Fprintf(a.out, "%d) %s | Unit: %.2f | Qty: %d | Line: %.2f\n",
			i+1, line.Name, line.UnitPrice, line.Quantity, line.LineTotal())
	}
	fmt.Fprintf(a.out, "Subtotal: %.2f\n", review.Subtotal)
	fmt.Fprintf(a.out, "VAT (%.0f%%): %.2f\n", a.cfg.TaxRate*100, review.Tax)
	fmt.Fprintf(a.out, "Total: %.2f\n", review.Total)

	confirm, err := a.readLine("Proceed to payment? (y/n): ")
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		fmt.Fprintln(a.out, "Checkout cancelled.")
		return nil
	}

	customer, err := a.readLine("Enter your name (press Enter to skip): ")
	if err != nil {
		return err
	}

	trans, err := a.engine.Checkout(ctx, basket, customer)
	if errors.Is(err, cart.ErrInsufficientStock) {
		fmt.Fprintf(a.out, "Checkout failed: %v\n", err)
		fmt.Fprintln(a.out, "Please adjust your cart.")
		return nil
	}
	if err != nil {
		fmt.Fprintf(a.out, "Checkout failed: %v\n", err)
		return nil
	}

	fmt.Fprintln(a.out, "Payment successful. Thank you for your purchase!")
	fmt.Fprintf(a.out, "Transaction ID: %d | Total: %.2f\n", trans.ID, trans.Total)
	return nil
}
