package gmail

// messageList is the response of the message list endpoint.
type messageList struct {
	Messages []messageRef `json:"messages"`
}

// messageRef is a single entry in a message list.
type messageRef struct {
	ID string `json:"id"`
}

// message is the response of the message detail endpoint, reduced to
// the payload headers.
type message struct {
	Payload payload `json:"payload"`
}

type payload struct {
	Headers []header `json:"headers"`
}

type header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// sendRequest is the body of the send endpoint: the whole raw RFC-822
// message, base64url-encoded without padding.
type sendRequest struct {
	Raw string `json:"raw"`
}
