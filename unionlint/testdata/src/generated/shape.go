package generated

//uniongen:union downcasts=false
type Shape interface{ isShape() }

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

type Square struct{ Side float64 }

func (Square) isShape() {}

func Area(s Shape) float64 {
	return MatchShape(s,
		func(c Circle) float64 { return 3 * c.Radius * c.Radius },
		func(q Square) float64 { return q.Side * q.Side },
	)
}
