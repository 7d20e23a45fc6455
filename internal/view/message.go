package view

const KindSuccess = "success"

// Message is the success text shown in the form's message region; Kind
// becomes the region's class. Failures travel as {"error": ...} bodies.
type Message struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func Success(text string) Message { return Message{Kind: KindSuccess, Text: text} }
