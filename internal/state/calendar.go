package state

import "fmt"

// The game starts in July 2024; one turn is one month.
const (
	startYear  = 2024
	startMonth = 6 // zero-indexed July
)

var months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Date formats a turn number as a month-and-year game date.
func Date(turn int) string {
	total := startMonth + turn
	return fmt.Sprintf("%s %d", months[total%12], startYear+total/12)
}

// Year returns the calendar year of a turn.
func Year(turn int) int {
	return startYear + (startMonth+turn)/12
}
