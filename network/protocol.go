package network

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/lixenwraith/walkbox/geometry"
	"github.com/lixenwraith/walkbox/navigation"
	"github.com/lixenwraith/walkbox/vmath"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message types on the wire
const (
	// Client to server
	MsgPointer  = "pointer"
	MsgPosition = "position"
	MsgPing     = "ping"

	// Server to client
	MsgHello = "hello"
	MsgPath  = "path"
	MsgState = "state"
	MsgPong  = "pong"
	MsgError = "error"
)

var ErrUnknownMessage = errors.New("network: unknown message type")

// Point is a world position on the wire
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func wirePoint(p vmath.Point) Point {
	return Point{X: p.X, Y: p.Y}
}

func (p Point) World() vmath.Point {
	return vmath.Pt(p.X, p.Y)
}

func wirePoints(pts []vmath.Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = wirePoint(p)
	}
	return out
}

// Segment is a drawable line with an optional debug category
type Segment struct {
	From     Point  `json:"from"`
	To       Point  `json:"to"`
	Category string `json:"category,omitempty"`
}

func wireSegments(segs []geometry.Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{From: wirePoint(s.Start), To: wirePoint(s.End)}
	}
	return out
}

func wireTagged(segs []navigation.TaggedSegment) []Segment {
	out := make([]Segment, len(segs))
	for i, ts := range segs {
		out[i] = Segment{From: wirePoint(ts.Segment.Start), To: wirePoint(ts.Segment.End), Category: ts.Category.String()}
	}
	return out
}

// ClientMessage covers every client to server message; unused fields stay zero
type ClientMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Click bool    `json:"click,omitempty"`
}

func (m ClientMessage) Point() vmath.Point {
	return vmath.Pt(m.X, m.Y)
}

// DecodeClient parses and validates one client message
func DecodeClient(data []byte) (ClientMessage, error) {
	var m ClientMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return ClientMessage{}, fmt.Errorf("decode client message: %w", err)
	}
	switch m.Type {
	case MsgPointer, MsgPosition, MsgPing:
		return m, nil
	default:
		return ClientMessage{}, fmt.Errorf("%w: %q", ErrUnknownMessage, m.Type)
	}
}

type HelloMessage struct {
	Type     string    `json:"type"`
	Session  string    `json:"session"`
	Scene    string    `json:"scene"`
	Position Point     `json:"position"`
	Boundary []Segment `json:"boundary"`
}

type PathMessage struct {
	Type        string    `json:"type"`
	Destination Point     `json:"destination"`
	Reachable   bool      `json:"reachable"`
	Committed   bool      `json:"committed"`
	Distance    float64   `json:"distance"`
	Points      []Point   `json:"points"`
	Segments    []Segment `json:"segments,omitempty"`
}

type StateMessage struct {
	Type     string `json:"type"`
	Position Point  `json:"position"`
	Moving   bool   `json:"moving"`
	Arrived  bool   `json:"arrived"`
}

type PongMessage struct {
	Type string `json:"type"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newPathMessage(res navigation.Result, committed bool, debug []navigation.TaggedSegment) PathMessage {
	msg := PathMessage{
		Type:        MsgPath,
		Destination: wirePoint(res.Destination),
		Reachable:   res.Reachable(),
		Committed:   committed,
		Points:      []Point{},
		Segments:    wireTagged(debug),
	}
	if res.Path != nil {
		msg.Distance = res.Path.Distance()
		msg.Points = wirePoints(res.Path.Waypoints())
	}
	return msg
}
