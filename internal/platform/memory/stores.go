package memory

// Stores is a set of in-memory stores that check references across each
// other the way foreign keys do: an athlete or WOD with results cannot be
// deleted, and a result must point at an existing athlete and WOD.
type Stores struct {
	Athletes *AthleteStore
	Wods     *WodStore
	Results  *ResultStore
}

// NewStores creates an empty, linked set of stores.
func NewStores() Stores {
	athletes := NewAthleteStore()
	wods := NewWodStore()
	results := NewResultStore()

	athletes.results = results
	wods.results = results
	results.athletes = athletes
	results.wods = wods

	return Stores{Athletes: athletes, Wods: wods, Results: results}
}
