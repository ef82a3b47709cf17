package link

// Route ties a menu selection to the byte sent for it and the byte the
// actuator answers with.
type Route struct {
	Selection int
	Command   byte
	Ack       byte
}

var routes = [...]Route{
	{Selection: 1, Command: '1', Ack: '1'},
	{Selection: 2, Command: '2', Ack: '2'},
	{Selection: 3, Command: '3', Ack: '3'},
	{Selection: 4, Command: '4', Ack: '4'},
	{Selection: 5, Command: '5', Ack: '5'},
	{Selection: 6, Command: '6', Ack: '6'},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes[:])
	return out
}

// CommandFor returns the command byte for a menu selection.
func CommandFor(sel int) (byte, bool) {
	for _, r := range routes {
		if r.Selection == sel {
			return r.Command, true
		}
	}
	return 0, false
}

// AckFor looks up an inbound acknowledgment byte.
func AckFor(b byte) (Route, bool) {
	for _, r := range routes {
		if r.Ack == b {
			return r, true
		}
	}
	return Route{}, false
}

// RouteFor looks up an outbound command byte.
func RouteFor(cmd byte) (Route, bool) {
	for _, r := range routes {
		if r.Command == cmd {
			return r, true
		}
	}
	return Route{}, false
}

func isCommand(b byte) bool {
	_, ok := RouteFor(b)
	return ok
}
