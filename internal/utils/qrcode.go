package utils

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"techplug_back_end/internal/models"
)

const qrSize = 256

// OrderReceiptText is the payload encoded in an order's QR code.
func OrderReceiptText(o models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TECHPLUG\n%s\n", o.ID)
	fmt.Fprintf(&b, "Date: %s\n", o.Date.Format("2006-01-02 15:04"))
	for _, item := range o.Items {
		fmt.Fprintf(&b, "%dx %s R%s\n", item.Quantity, item.Name, item.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: R%s\nStatus: %s\nPayment: %s", o.Total.StringFixed(2), o.Status, o.PaymentMethod)
	return b.String()
}

// OrderQRCode renders the receipt as a PNG.
func OrderQRCode(o models.Order) ([]byte, error) {
	return qrcode.Encode(OrderReceiptText(o), qrcode.Medium, qrSize)
}

// OrderQRDataURI is OrderQRCode ready for an <img src>.
func OrderQRDataURI(o models.Order) (string, error) {
	png, err := OrderQRCode(o)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
