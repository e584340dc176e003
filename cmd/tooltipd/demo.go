package main

import (
	"net/http"

	"github.com/vango-dev/tooltip/pkg/templates"
	. "github.com/vango-dev/tooltip/pkg/vdom"
)

// demoTemplates registers the templates used by demoMount.
func demoTemplates() *templates.Registry {
	reg := templates.NewRegistry()
	reg.MustRegister("stock", func(ctx templates.Context) *VNode {
		return Ul(
			Li(Textf("Warehouse: %s", ctx.String("warehouse"))),
			Li(Textf("Quantity: %s", ctx.String("qty"))),
		)
	})
	reg.MustRegister("about", func(ctx templates.Context) *VNode {
		return Span(Text("Served by "), B(Text(ctx.String("product"))))
	})
	return reg
}

// demoItem is one row of the demo inventory.
type demoItem struct {
	SKU       string
	Name      string
	Warehouse string
	Qty       int
}

var demoItems = []demoItem{
	{SKU: "w-100", Name: "Widget", Warehouse: "North", Qty: 12},
	{SKU: "g-200", Name: "Gadget", Warehouse: "South", Qty: 0},
	{SKU: "s-300", Name: "Sprocket", Warehouse: "East", Qty: 1500000},
}

func demoMount(*http.Request) *VNode {
	return Div(Class("demo"),
		Header(
			H1(Text("Inventory")),
			Span(ID("about"), TooltipTemplate("about"), TooltipPosition("bottom"), Text("?")),
		),
		Section(
			Input(Type("search"), Name("q"), Tooltip("Filter rows by name"), TooltipPosition("bottom")),
			Button(ID("save"), Tooltip("Save changes"), TooltipPosition("top"), Text("Save")),
			Button(ID("delete"), Tooltip("Delete the selected rows"), TooltipDelay(800), Text("Delete")),
			Button(ID("export"), Disabled(), Tooltip("Select rows to export"), Text("Export")),
			Button(ID("help"), Tooltip("Tap again to close"), TooltipTouchTapToShow(), Text("Help")),
		),
		Ul(Range(demoItems, func(item demoItem, _ int) *VNode {
			return Li(Key(item.SKU), Data("sku", item.SKU),
				TooltipTemplate("stock"),
				TooltipInfo(map[string]any{"warehouse": item.Warehouse, "qty": item.Qty}),
				TooltipPosition("right"),
				Text(item.Name),
				If(item.Qty == 0, Small(Text(" (out of stock)"))),
			)
		})),
		Footer(Small(Tooltip(""), Text("no tooltip here"))),
	)
}
