// Package a2a defines the A2A JSON-RPC envelope and helpers for building responses.
package a2a

import (
	"encoding/json"
	"strings"
)

// Task states reported in task status updates.
const (
	StateWorking   = "WORKING"
	StateCompleted = "COMPLETED"
)

// JSON-RPC error codes used by the bridge.
const (
	CodeParseError     = -32700
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeGatewayError   = -32000
)

// Methods the bridge dispatches on.
const (
	MethodSend   = "message/send"
	MethodStream = "message/stream"
)

// Request is an inbound A2A JSON-RPC request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  Params          `json:"params"`
}

// Params carries the message payload of message/send and message/stream.
type Params struct {
	Message Message `json:"message"`
}

// Message is an A2A message composed of typed parts.
type Message struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// Part is a single message part. The bridge only consumes kind "text".
type Part struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

// Response is an outbound A2A JSON-RPC response. ID echoes the request ID
// verbatim and marshals as null when the request carried none.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  *TaskResult     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// TaskResult is the result payload of a successful call.
type TaskResult struct {
	ID     string     `json:"id"`
	Status TaskStatus `json:"status"`
}

// TaskStatus reports the task state together with the agent message.
type TaskStatus struct {
	State   string  `json:"state"`
	Message Message `json:"message"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ExtractText returns the newline-joined text of every text-kind part, in
// their original order. Parts of other kinds and text parts with no content
// are ignored.
func ExtractText(parts []Part) string {
	var texts []string
	for _, p := range parts {
		if p.Kind == "text" && p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// NewResult builds a success response carrying a task status update with a
// single agent text part.
func NewResult(id json.RawMessage, taskID, state, text string) Response {
	return Response{
		JSONRPC: "2.0",
		ID:      id,
		Result: &TaskResult{
			ID: taskID,
			Status: TaskStatus{
				State: state,
				Message: Message{
					Role:  "agent",
					Parts: []Part{{Kind: "text", Text: text}},
				},
			},
		},
	}
}

// NewError builds an error response echoing the original request ID.
func NewError(id json.RawMessage, code int, message string) Response {
	return Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message},
	}
}
