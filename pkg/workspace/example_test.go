package workspace_test

import (
	"fmt"

	"github.com/matzehuels/auteur/pkg/board"
	"github.com/matzehuels/auteur/pkg/interaction"
	"github.com/matzehuels/auteur/pkg/workspace"
)

func ExampleWorkspace_PointerMove() {
	ws := workspace.New(board.NewProject("Pilot"))
	mood, _ := ws.AddBoard("MOODBOARD")
	fmt.Printf("added at column %d, row %d\n", mood.X, mood.Y)

	// Drag one column right and one row down.
	ws.PointerDown(interaction.Drag, mood.ID, 100, 100)
	c, _ := ws.PointerMove(100+404, 100+144)
	ws.PointerUp()
	fmt.Printf("moved to column %d, row %d\n", c.X, c.Y)
	// Output:
	// added at column 1, row 0
	// moved to column 2, row 1
}
