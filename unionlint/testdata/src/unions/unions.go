package unions

//uniongen:union factorys=true
type Shape interface{ isShape() } // want `UG012: marker on Shape: unknown option "factorys"`

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

//uniongen:case name=Circle
type Ring struct{ R float64 } // want `UG007: case name Circle is declared more than once in union Shape; only the first declaration \(Circle\) is used`

func (Ring) isShape() {}

type Blob interface { // want `UG006: case Blob of union Shape is an interface type`
	isShape()
}

// Disk only draws an info diagnostic on Shape, which is off by default.
type Disk struct{ R float64 }

func (*Disk) isShape() {}

//uniongen:union
type Animal interface{ Sound() string } // want `UG002: union root Animal must declare an unexported method` `UG008: union root Animal declares method Sound`

//uniongen:union
type Config struct{ Name string } // want `UG001: union root Config must be an interface type; a struct can be instantiated directly` `UG008: union root Config declares 1 field\(s\)`

//uniongen:union
type Event interface{ isEvent() }

type Click struct{}

func (Click) isEvent() {}

func IsClick(e Event) bool { return false } // want `UG013: generated identifier IsClick for union Event collides`

//uniongen:union
type Empty interface{ isEmpty() } // want `UG005: union Empty declares no cases`
