package svc

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

type fakeClock struct {
	now uint32
}

func (c *fakeClock) clock() uint32 { return c.now }

func TestTicker(t *testing.T) {
	Convey("Given a ticker with a 5000ms interval that last fired at 0", t, func() {
		c := &fakeClock{}
		tk := NewTicker(c.clock, 5*time.Second)

		Convey("It does not fire and keeps its state before the interval elapses", func() {
			for _, d := range []uint32{0, 1, 2500, 4999} {
				c.now = d
				So(tk.TimeIsUp(), ShouldBeFalse)
				So(tk.last, ShouldEqual, uint32(0))
			}
		})

		Convey("It fires exactly at the interval and resets to the firing time", func() {
			c.now = 5000
			So(tk.TimeIsUp(), ShouldBeTrue)
			So(tk.last, ShouldEqual, uint32(5000))
			So(tk.TimeIsUp(), ShouldBeFalse)
		})

		Convey("It fires once per crossing when polled late", func() {
			c.now = 12345
			So(tk.TimeIsUp(), ShouldBeTrue)
			So(tk.last, ShouldEqual, uint32(12345))

			c.now = 17344
			So(tk.TimeIsUp(), ShouldBeFalse)
			c.now = 17345
			So(tk.TimeIsUp(), ShouldBeTrue)
		})

		Convey("It keeps counting across a wrap of the clock", func() {
			tk.last = 0xFFFFF000
			c.now = 0x00000387 // 4999ms after last
			So(tk.TimeIsUp(), ShouldBeFalse)
			c.now = 0x00000388 // 5000ms after last
			So(tk.TimeIsUp(), ShouldBeTrue)
			So(tk.last, ShouldEqual, uint32(0x00000388))
		})

		Convey("It reports the interval", func() {
			So(tk.Interval(), ShouldEqual, 5*time.Second)
		})
	})
}

func TestMillis(t *testing.T) {
	Convey("Millis starts near zero and does not go backwards", t, func() {
		m := Millis()
		first := m()
		So(first, ShouldBeLessThan, 1000)
		time.Sleep(5 * time.Millisecond)
		So(m(), ShouldBeGreaterThanOrEqualTo, first)
	})
}
