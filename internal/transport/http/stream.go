package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openclaw/a2a-bridge/internal/a2a"
	"github.com/openclaw/a2a-bridge/internal/gateway"
)

// streamState tracks one message/stream call through its lifecycle. The
// machine guarantees exactly one COMPLETED event, always last, and that no
// partial stream is opened when the gateway call never establishes.
type streamState int

const (
	stateAwaitingUpstream streamState = iota
	stateStreaming
	stateCompleted
	stateErrored
)

// sseEventType labels every downstream SSE block.
const sseEventType = "message/stream"

// handleStream proxies a message/stream call: each gateway delta is emitted
// as a WORKING event carrying that fragment, followed by one COMPLETED event
// carrying the full accumulated text. A caller disconnect aborts silently.
func (h *Handler) handleStream(c echo.Context, req *a2a.Request, userText, senderID string) error {
	taskID := h.newTaskID()

	var (
		state     = stateAwaitingUpstream
		stream    *gateway.Stream
		openErr   error
		collected strings.Builder
	)

	for state == stateAwaitingUpstream || state == stateStreaming {
		switch state {
		case stateAwaitingUpstream:
			stream, openErr = h.client.OpenStream(c.Request().Context(), userText, senderID)
			if openErr != nil {
				state = stateErrored
				break
			}
			openSSE(c.Response())
			state = stateStreaming

		case stateStreaming:
			fragment, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					log.Printf("WARN: gateway stream ended early: %v", err)
				}
				state = stateCompleted
				break
			}
			collected.WriteString(fragment)
			if err := writeEvent(c.Response(), a2a.NewResult(req.ID, taskID, a2a.StateWorking, fragment)); err != nil {
				// Caller disconnected; it will never see anything we write.
				state = stateErrored
			}
		}
	}

	if stream != nil {
		stream.Close()
	}

	if state == stateErrored {
		if openErr != nil {
			// No stream was opened; the error envelope is the whole response.
			return c.JSON(http.StatusOK, a2a.NewError(req.ID, a2a.CodeGatewayError, openErr.Error()))
		}
		return nil
	}

	final := a2a.NewResult(req.ID, taskID, a2a.StateCompleted, collected.String())
	if err := writeEvent(c.Response(), final); err != nil {
		return nil
	}
	return nil
}

// openSSE commits the response as an event stream.
func openSSE(resp *echo.Response) {
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set("Cache-Control", "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)
	resp.Flush()
}

// writeEvent writes one SSE block and flushes it to the caller.
func writeEvent(resp *echo.Response, event a2a.Response) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(resp, "event: %s\ndata: %s\n\n", sseEventType, data); err != nil {
		return err
	}
	resp.Flush()
	return nil
}
