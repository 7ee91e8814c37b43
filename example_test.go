package outlet_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/outlet"
	"github.com/aretw0/outlet/pkg/adapters/memory"
	"github.com/aretw0/outlet/pkg/domain"
)

// ExampleCreate walks an outlet through its allowed locations on an
// in-memory workspace.
func ExampleCreate() {
	ws := memory.New()
	out, err := outlet.Create(ws, ws.NewItem("Build output"), map[string]any{
		"allowedLocations": []string{"center", "bottom", "right"},
		"defaultLocation":  "bottom",
	})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := out.Open(ctx); err != nil {
		log.Fatal(err)
	}
	fmt.Println("opened in", out.Location())

	for i := 0; i < 3; i++ {
		if err := out.Relocate(domain.Forward); err != nil {
			log.Fatal(err)
		}
		fmt.Println("relocated to", out.Location())
	}

	// Output:
	// opened in bottom
	// relocated to right
	// relocated to center
	// relocated to bottom
}

// ExampleOutlet_Hide shows how a centered outlet is parked and restored.
func ExampleOutlet_Hide() {
	ws := memory.New()
	out, err := outlet.Create(ws, ws.NewItem("Preview"), map[string]any{"defaultLocation": "center"})
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := out.Open(ctx); err != nil {
		log.Fatal(err)
	}
	_ = out.Hide()
	fmt.Println(out.Location(), out.HiddenInCenter())
	_ = out.Show()
	fmt.Println(out.Location(), out.HiddenInCenter())

	// Output:
	// bottom true
	// center false
}
