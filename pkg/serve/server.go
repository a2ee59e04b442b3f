package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/TheApac/stringcheese/pkg/search"
)

// Version is the server protocol version
const Version = "1.0.0"

// Server answers NDJSON scan requests with one engine built up front.
type Server struct {
	engine  *search.Engine
	encoder *json.Encoder
	decoder *json.Decoder
	logger  *slog.Logger
}

// NewServer creates a new streaming server
func NewServer(engine *search.Engine, in io.Reader, out io.Writer) *Server {
	return &Server{
		engine:  engine,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
		logger:  slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for request tracing.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Run starts the server main loop
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Process requests until input closes or context cancels
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(ctx, req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(ctx, req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(ctx context.Context, req Request) bool {
	s.logger.Debug("request", "type", req.Type, "bytes", len(req.Payload))

	switch req.Type {
	case "scan":
		s.handleScan(ctx, req.Payload)
	case "scan_batch":
		s.handleScanBatch(ctx, req.Payload)
	case "close":
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send("ready", ReadyData{
		Version:  Version,
		Variants: len(s.engine.Variants()),
		Views:    s.engine.ViewCount(),
	})
}

func (s *Server) handleScan(ctx context.Context, payload json.RawMessage) {
	var p ScanPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("scan", err.Error())
		return
	}

	result, err := ScanItem(ctx, s.engine, p)
	if err != nil {
		s.sendError("scan", err.Error())
		return
	}
	s.send("scan", result)
}

func (s *Server) handleScanBatch(ctx context.Context, payload json.RawMessage) {
	var p ScanBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError("scan_batch", err.Error())
		return
	}

	result, err := ScanBatch(ctx, s.engine, p.Items)
	if err != nil {
		s.sendError("scan_batch", err.Error())
		return
	}
	s.send("scan_batch", result)
}

func (s *Server) send(respType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(respType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
