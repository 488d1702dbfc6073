package building

import "stationbuilder/pkg/engine/world"

type journalEntry struct {
	at   world.Coord
	prev world.Cell
}

// journal forwards writes to the grid and remembers what each write replaced so a failed
// build can be undone. It satisfies rooms.CellWriter and decor.Grid.
type journal struct {
	grid    *world.Grid
	entries []journalEntry
}

func newJournal(g *world.Grid) *journal {
	return &journal{grid: g}
}

func (j *journal) Role(c world.Coord) world.Role {
	return j.grid.Role(c)
}

func (j *journal) SetCell(c world.Coord, role world.Role) error {
	prev := j.grid.Cell(c)
	if err := j.grid.SetCell(c, role); err != nil {
		return err
	}
	j.entries = append(j.entries, journalEntry{at: c, prev: prev})
	return nil
}

func (j *journal) Assign(c world.Coord, role world.Role, owner world.OwnerID) error {
	prev := j.grid.Cell(c)
	if err := j.grid.Assign(c, role, owner); err != nil {
		return err
	}
	j.entries = append(j.entries, journalEntry{at: c, prev: prev})
	return nil
}

// rollback replays the journal backwards, restoring every cell it touched.
func (j *journal) rollback() {
	for i := len(j.entries) - 1; i >= 0; i-- {
		e := j.entries[i]
		_ = j.grid.Assign(e.at, e.prev.Role, e.prev.Owner)
	}
	j.entries = nil
}

func (j *journal) len() int {
	return len(j.entries)
}
