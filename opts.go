package calc

import (
	"math"
	"strconv"
)

// AngleMode is the unit in which the trigonometric functions take their
// arguments.
type AngleMode int8

const (
	// Degrees makes sin(90) equal 1. It is the default.
	Degrees AngleMode = iota
	// Radians makes sin(pi/2) equal 1.
	Radians
)

func (m AngleMode) String() string {
	switch m {
	case Degrees:
		return "DEG"
	case Radians:
		return "RAD"
	default:
		return "AngleMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Option is an option for parsing or evaluating an expression.
type Option interface {
	option()
}

type (
	angleopt AngleMode
	constopt struct {
		name string
		val  float64
	}
	constsopt map[string]float64
)

func (angleopt) option()  {}
func (constopt) option()  {}
func (constsopt) option() {}

// Angle sets the unit of arguments to sin, cos, and tan.
func Angle(mode AngleMode) Option {
	return angleopt(mode)
}

// SetConst binds a constant. It overrides any earlier binding of the same
// name, including pi, e, and Ans.
func SetConst(name string, val float64) Option {
	return constopt{name, val}
}

// SetConsts binds any number of constants.
func SetConsts(vals map[string]float64) Option {
	return constsopt(vals)
}

// Ans is a shortcut for binding the previous result.
func Ans(val float64) Option {
	return constopt{"Ans", val}
}

// config holds the options for a single parse or evaluation.
type config struct {
	angle  AngleMode
	consts map[string]float64
}

// configure applies options in order over the defaults. The constants map is
// always a fresh copy.
func configure(opts []Option) config {
	c := config{
		angle: Degrees,
		consts: map[string]float64{
			"pi":  math.Pi,
			"e":   math.E,
			"Ans": 0,
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case angleopt:
			c.angle = AngleMode(opt)
		case constopt:
			c.consts[opt.name] = opt.val
		case constsopt:
			for k, v := range opt {
				c.consts[k] = v
			}
		default:
			panic("calc: unknown option type")
		}
	}
	return c
}
