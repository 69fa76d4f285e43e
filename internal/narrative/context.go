package narrative

import (
	"fmt"
	"strings"

	"github.com/turbodog111/parliament/internal/politics"
	"github.com/turbodog111/parliament/internal/state"
)

// buildContext renders a read-only summary of the world for the generator.
// It is derived data only — the generator never sees or touches the world
// itself.
func buildContext(w *state.World) string {
	player := politics.ByID(w.PlayerParty)
	playerName := w.PlayerName
	partyName := string(w.PlayerParty)
	if player != nil {
		partyName = player.Name
	}

	govStatus := "in opposition"
	if w.IsInGovernment {
		govStatus = "in government as PM"
	}

	var seats []string
	for _, p := range politics.PartyOrder {
		if n := w.Seats[p]; n > 0 {
			seats = append(seats, fmt.Sprintf("%s: %d", shortName(p), n))
		}
	}

	var polling []string
	for _, p := range politics.PartyOrder {
		if v := w.Polling[p]; v >= 1 {
			polling = append(polling, fmt.Sprintf("%s: %.1f%%", shortName(p), v))
		}
	}

	var bills []string
	for _, b := range w.Bills {
		bills = append(bills, b.Title)
	}
	billList := strings.Join(bills, ", ")
	if billList == "" {
		billList = "None"
	}

	return fmt.Sprintf(`Current UK political situation (%s):
- %s (led by %s) is %s.
- PM party: %s
- Seats: %s
- Polling: %s
- PM approval: %d%%, Party unity: %d%%
- Active bills: %s
- Phase: %s, Turn: %d`,
		state.Date(w.Turn),
		partyName, playerName, govStatus,
		partyLongName(w.PMParty),
		strings.Join(seats, ", "),
		strings.Join(polling, ", "),
		w.Approval, w.Unity,
		billList,
		w.Phase, w.Turn,
	)
}

func shortName(p politics.PartyID) string {
	if party := politics.ByID(p); party != nil {
		return party.Short
	}
	return string(p)
}

func partyLongName(p politics.PartyID) string {
	if party := politics.ByID(p); party != nil {
		return party.Name
	}
	return string(p)
}
