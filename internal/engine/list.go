package engine

import (
	"fmt"
	"io"

	"github.com/genricoloni/presenced/internal/domain"
)

// ListPlayers prints the players currently on the bus along with allow-list usage hints
func ListPlayers(w io.Writer, source domain.PlayerSource) error {
	if err := source.Connect(); err != nil {
		return err
	}
	defer source.Close()

	players, err := source.ListPlayers()
	if err != nil || len(players) == 0 {
		fmt.Fprintln(w, "Could not find any player with MPRIS support.")
		return nil
	}

	fmt.Fprintln(w, "List of available music players with MPRIS support:")
	for _, p := range players {
		fmt.Fprintf(w, " * %s\n", p.Identity)
	}

	first := players[0].Identity
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use the name to choose which player the presence is taken from:")
	fmt.Fprintf(w, "  presenced -a %q\n", first)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The -a flag can be repeated; earlier entries take priority:")
	fmt.Fprintf(w, "  presenced -a %q -a \"Second Player\"\n", first)
	return nil
}
