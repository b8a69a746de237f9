// Package shoppinglist merges recipe ingredient lines into a grouped shopping list.
package shoppinglist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const DefaultAisle = "Other"

// Line is one recipe ingredient row.
type Line struct {
	RecipeKey   string
	RecipeTitle string
	Name        string // canonical, as stored on the ingredient row
	DisplayName string
	Aisle       string
	Amount      float64
	Unit        string
}

type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Item is one merged ingredient. Amount and Unit report the first unit seen;
// Quantities holds one summed entry per distinct unit.
type Item struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"display_name"`
	Aisle       string     `json:"aisle"`
	Amount      float64    `json:"amount"`
	Unit        string     `json:"unit"`
	Notes       string     `json:"notes,omitempty"`
	Quantities  []Quantity `json:"quantities"`
}

// MixedUnits reports whether the amounts could not be summed into one unit.
func (i *Item) MixedUnits() bool {
	return len(i.Quantities) > 1
}

type AisleGroup struct {
	Aisle string  `json:"aisle"`
	Items []*Item `json:"items"`
}

type RecipeGroup struct {
	RecipeKey   string `json:"recipe_id"`
	RecipeTitle string `json:"recipe_title"`
	Lines       []Line `json:"ingredients"`
}

type List struct {
	ByAisle    []AisleGroup  `json:"by_aisle"`
	ByRecipe   []RecipeGroup `json:"by_recipe"`
	TotalItems int           `json:"total_items"`
}

// Items flattens ByAisle in display order.
func (l *List) Items() []*Item {
	var items []*Item
	for _, g := range l.ByAisle {
		items = append(items, g.Items...)
	}
	return items
}

func sameUnit(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// Merge aggregates lines across recipes. Lines are keyed by Name, which the
// caller has already normalized. Equal units are summed; different units are
// kept side by side and described in Notes.
func Merge(lines []Line) *List {
	merged := make(map[string]*Item)
	order := make([]string, 0)

	recipes := make(map[string]*RecipeGroup)
	recipeOrder := make([]string, 0)

	for _, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			continue
		}
		key := line.Name
		aisle := strings.TrimSpace(line.Aisle)
		if aisle == "" {
			aisle = DefaultAisle
		}
		line.Aisle = aisle

		group, ok := recipes[line.RecipeKey]
		if !ok {
			group = &RecipeGroup{RecipeKey: line.RecipeKey, RecipeTitle: line.RecipeTitle}
			recipes[line.RecipeKey] = group
			recipeOrder = append(recipeOrder, line.RecipeKey)
		}
		group.Lines = append(group.Lines, line)

		item, ok := merged[key]
		if !ok {
			display := line.DisplayName
			if display == "" {
				display = line.Name
			}
			item = &Item{Name: key, DisplayName: display, Aisle: aisle}
			merged[key] = item
			order = append(order, key)
		}
		addQuantity(item, line.Amount, strings.TrimSpace(line.Unit))
	}

	list := &List{TotalItems: len(merged)}

	byAisle := make(map[string]*AisleGroup)
	for _, key := range order {
		item := merged[key]
		item.Amount = item.Quantities[0].Amount
		item.Unit = item.Quantities[0].Unit
		if item.MixedUnits() {
			item.Notes = describe(item.Quantities)
		}
		g, ok := byAisle[item.Aisle]
		if !ok {
			g = &AisleGroup{Aisle: item.Aisle}
			byAisle[item.Aisle] = g
		}
		g.Items = append(g.Items, item)
	}

	aisles := make([]string, 0, len(byAisle))
	for aisle := range byAisle {
		aisles = append(aisles, aisle)
	}
	sort.Strings(aisles)
	list.ByAisle = make([]AisleGroup, 0, len(aisles))
	for _, aisle := range aisles {
		g := byAisle[aisle]
		sort.SliceStable(g.Items, func(i, j int) bool { return g.Items[i].Name < g.Items[j].Name })
		list.ByAisle = append(list.ByAisle, *g)
	}

	list.ByRecipe = make([]RecipeGroup, 0, len(recipeOrder))
	for _, key := range recipeOrder {
		list.ByRecipe = append(list.ByRecipe, *recipes[key])
	}

	return list
}

func addQuantity(item *Item, amount float64, unit string) {
	for i := range item.Quantities {
		if sameUnit(item.Quantities[i].Unit, unit) {
			item.Quantities[i].Amount += amount
			return
		}
	}
	item.Quantities = append(item.Quantities, Quantity{Amount: amount, Unit: unit})
}

// FormatQuantity renders "1.5 cup", "2" or "200 g".
func FormatQuantity(q Quantity) string {
	amount := strconv.FormatFloat(q.Amount, 'f', -1, 64)
	if q.Unit == "" {
		return amount
	}
	return amount + " " + q.Unit
}

func describe(quantities []Quantity) string {
	parts := make([]string, len(quantities))
	for i, q := range quantities {
		parts[i] = FormatQuantity(q)
	}
	return strings.Join(parts, " + ")
}

// FormatText renders the list as plain text grouped by aisle.
func FormatText(title string, list *List) string {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	if list == nil || list.TotalItems == 0 {
		b.WriteString("No items.\n")
		return b.String()
	}
	for _, g := range list.ByAisle {
		fmt.Fprintf(&b, "%s:\n", g.Aisle)
		for _, item := range g.Items {
			if item.MixedUnits() {
				fmt.Fprintf(&b, "  - %s (%s)\n", item.DisplayName, item.Notes)
				continue
			}
			fmt.Fprintf(&b, "  - %s %s\n", item.DisplayName, FormatQuantity(item.Quantities[0]))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total items: %d\n", list.TotalItems)
	return b.String()
}
