package notify

import (
	"fmt"
	"strings"

	"github.com/davancensm/Case36-TercerEntrega/internal/domain"
)

// orderSummaryHTML renders the purchased lines as an HTML list. The
// contact record is not a line and never appears in the summary.
func orderSummaryHTML(order domain.Order) string {
	var b strings.Builder
	for _, line := range order.Items {
		fmt.Fprintf(&b, "<ul><li>name: %s</li><li>price: %v</li><li>id: %d</li></ul><br>", line.Name, line.Price, line.ID)
	}
	return b.String()
}

// orderSummaryText renders the purchased lines as plain text for the
// WhatsApp message body.
func orderSummaryText(order domain.Order) string {
	var b strings.Builder
	for _, line := range order.Items {
		fmt.Fprintf(&b, "\nname: %s\nprice: %v\nid: %d\n", line.Name, line.Price, line.ID)
	}
	return b.String()
}
