package courier_test

import (
	"fmt"

	"github.com/courierbus/courier"
	"github.com/courierbus/courier/exec"
)

type TemperatureReading struct {
	Celsius float64
}

type Display struct {
	*courier.Receiver
}

func Example() {
	bus := courier.New()

	// The display lives on the caller's goroutine, so deliveries to it
	// run inline.
	display := &Display{Receiver: courier.NewReceiver(exec.Inline())}
	defer bus.UnregisterAll(display)

	courier.Register(bus, display, courier.Wildcard, func(r TemperatureReading) {
		fmt.Printf("reading: %.1f\n", r.Celsius)
	})

	courier.Send(bus, TemperatureReading{Celsius: 21.5}, courier.Wildcard)
	courier.Send(bus, TemperatureReading{Celsius: 22.0}, courier.Wildcard)

	// Output:
	// reading: 21.5
	// reading: 22.0
}

func Example_tokens() {
	bus := courier.New()
	display := &Display{Receiver: courier.NewReceiver(exec.Inline())}
	defer bus.UnregisterAll(display)

	// Only readings tagged "indoor" reach this subscription.
	courier.Register(bus, display, courier.Token("indoor"), func(r TemperatureReading) {
		fmt.Printf("indoor: %.1f\n", r.Celsius)
	})

	courier.Send(bus, TemperatureReading{Celsius: 21.5}, courier.Token("indoor"))
	courier.Send(bus, TemperatureReading{Celsius: -3.0}, courier.Token("outdoor"))

	// Output:
	// indoor: 21.5
}
