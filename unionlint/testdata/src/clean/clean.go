package clean

//uniongen:errorunion adapters=true
type UserError interface {
	error
	isUserError()
}

type NotFound struct{ ID string }

func (NotFound) isUserError()    {}
func (e NotFound) Error() string { return "not found: " + e.ID }

type Unauthorized struct{}

func (Unauthorized) isUserError()  {}
func (Unauthorized) Error() string { return "unauthorized" }

// Not marked, so never checked.
type Plain interface{ Area() float64 }
