package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ironsheep/image-editor-mcp/internal/crop"
	"github.com/ironsheep/image-editor-mcp/internal/editor"
	"github.com/ironsheep/image-editor-mcp/internal/geometry"
	"github.com/ironsheep/image-editor-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "editor_load", "editor_pointer").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Warn().Err(err).Str("tool", params.Name).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session
	case "editor_load":
		return s.handleLoad(args)
	case "editor_info":
		return s.handleInfo(args)
	case "editor_set_display":
		return s.handleSetDisplay(args)

	// Crop
	case "editor_crop_start":
		return s.handleCropStart(args)
	case "editor_crop_cancel":
		return s.handleCropCancel(args)
	case "editor_crop_confirm":
		return s.handleCropConfirm(args)
	case "editor_pointer":
		return s.handlePointer(args)
	case "editor_crop_aspect":
		return s.handleCropAspect(args)

	// Adjustments
	case "editor_brightness":
		return s.handleSlider(args, editor.SliderBrightness)
	case "editor_contrast":
		return s.handleSlider(args, editor.SliderContrast)
	case "editor_filter":
		return s.handleFilter(args)
	case "editor_reset":
		return s.handleReset(args)
	case "editor_rotate":
		return s.handleRotate(args)

	// Output
	case "editor_preview":
		return s.handlePreview(args)
	case "editor_sample_color":
		return s.handleSampleColor(args)
	case "editor_export":
		return s.handleExport(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals optional tool arguments. Absent arguments leave v
// untouched.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// === Session state ===

// CropInfo describes the crop selection.
type CropInfo struct {
	State       string         `json:"state"`
	Selection   *geometry.Rect `json:"selection,omitempty"`
	Handle      string         `json:"handle,omitempty"`
	AspectRatio float64        `json:"aspect_ratio"`
}

// StateResult is returned by every tool that changes the session.
type StateResult struct {
	Loaded      bool                    `json:"loaded"`
	Source      string                  `json:"source,omitempty"`
	Width       int                     `json:"width,omitempty"`
	Height      int                     `json:"height,omitempty"`
	Display     geometry.DisplayRect    `json:"display"`
	Adjustments imaging.AdjustmentState `json:"adjustments"`
	Crop        CropInfo                `json:"crop"`
	Stats       editor.Stats            `json:"stats"`
}

func (s *Server) state() *StateResult {
	e := s.editor
	res := &StateResult{
		Loaded:      e.Loaded(),
		Display:     e.DisplayRect(),
		Adjustments: e.Adjustments(),
		Crop: CropInfo{
			State:       e.CropState().String(),
			AspectRatio: e.AspectRatio(),
		},
		Stats: e.Stats(),
	}
	if !res.Loaded {
		return res
	}

	res.Source = s.source
	if f, err := e.Frame(); err == nil {
		res.Width, res.Height = f.Buffer.Width, f.Buffer.Height
		res.Crop.Selection = f.Selection
		if f.Handle != crop.HandleNone {
			res.Crop.Handle = f.Handle.String()
		}
	}
	return res
}

type loadArgs struct {
	Path string `json:"path"`
}

// LoadResult describes a freshly loaded image.
type LoadResult struct {
	File  *imaging.ImageInfo `json:"file"`
	State *StateResult       `json:"state"`
}

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a loadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	buf, info, err := imaging.LoadImageInfo(s.cache, a.Path)
	if err != nil {
		return nil, err
	}
	if err := s.editor.LoadImage(buf); err != nil {
		return nil, err
	}
	s.source = a.Path

	log.Info().
		Str("path", a.Path).
		Int("width", info.Width).
		Int("height", info.Height).
		Msg("image loaded")

	return &LoadResult{File: info, State: s.state()}, nil
}

func (s *Server) handleInfo(_ json.RawMessage) (interface{}, error) {
	return s.state(), nil
}

func (s *Server) handleSetDisplay(args json.RawMessage) (interface{}, error) {
	var d geometry.DisplayRect
	if err := json.Unmarshal(args, &d); err != nil {
		return nil, err
	}
	if !d.Sized() {
		return nil, fmt.Errorf("display %vx%v: %w", d.Width, d.Height, geometry.ErrSurfaceNotSized)
	}
	s.editor.SetDisplayRect(d)
	return s.state(), nil
}

// === Crop ===

func (s *Server) handleCropStart(_ json.RawMessage) (interface{}, error) {
	if err := s.editor.StartCrop(); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// CancelResult reports whether a selection was discarded.
type CancelResult struct {
	Canceled bool         `json:"canceled"`
	State    *StateResult `json:"state"`
}

func (s *Server) handleCropCancel(_ json.RawMessage) (interface{}, error) {
	canceled, err := s.editor.CancelCrop()
	if err != nil {
		return nil, err
	}
	return &CancelResult{Canceled: canceled, State: s.state()}, nil
}

// Region is a pixel rectangle with exclusive max edges.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// ConfirmResult reports the committed crop.
type ConfirmResult struct {
	Region Region       `json:"region"`
	State  *StateResult `json:"state"`
}

func (s *Server) handleCropConfirm(_ json.RawMessage) (interface{}, error) {
	r, err := s.editor.ConfirmCrop()
	if err != nil {
		return nil, err
	}
	return &ConfirmResult{
		Region: Region{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y},
		State:  s.state(),
	}, nil
}

type pointerArgs struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	p := geometry.Point{X: a.X, Y: a.Y}
	var ev editor.Event
	switch strings.ToLower(a.Action) {
	case "down":
		ev = editor.PointerDown{Point: p}
	case "move":
		ev = editor.PointerMove{Point: p}
	case "up":
		ev = editor.PointerUp{}
	default:
		return nil, fmt.Errorf("unknown pointer action %q (use down, move or up)", a.Action)
	}

	if err := s.editor.Dispatch(ev); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type aspectArgs struct {
	Ratio string `json:"ratio"`
}

func (s *Server) handleCropAspect(args json.RawMessage) (interface{}, error) {
	var a aspectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ratio, err := crop.ParseAspectRatio(a.Ratio)
	if err != nil {
		return nil, err
	}
	if err := s.editor.SetAspectRatio(ratio); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Adjustments ===

type sliderArgs struct {
	Value *int `json:"value"`
}

func (s *Server) handleSlider(args json.RawMessage, slider editor.Slider) (interface{}, error) {
	var a sliderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Value == nil {
		return nil, fmt.Errorf("value is required")
	}
	if err := s.editor.Dispatch(editor.SliderChange{Slider: slider, Value: *a.Value}); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type filterArgs struct {
	Filter string `json:"filter"`
}

func (s *Server) handleFilter(args json.RawMessage) (interface{}, error) {
	var a filterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	f, err := imaging.ParseFilter(a.Filter)
	if err != nil {
		return nil, err
	}
	if err := s.editor.Dispatch(editor.FilterSelect{Filter: f}); err != nil {
		return nil, err
	}
	return s.state(), nil
}

func (s *Server) handleReset(_ json.RawMessage) (interface{}, error) {
	if err := s.editor.ResetAdjustments(); err != nil {
		return nil, err
	}
	return s.state(), nil
}

func (s *Server) handleRotate(_ json.RawMessage) (interface{}, error) {
	if err := s.editor.Rotate90(); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// === Output ===

type previewArgs struct {
	Scale   float64 `json:"scale"`
	Overlay *bool   `json:"overlay"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	a := previewArgs{Scale: 1.0}
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	f, err := s.editor.Frame()
	if err != nil {
		return nil, err
	}
	if a.Overlay != nil && !*a.Overlay {
		f.Selection = nil
	}

	composed, err := editor.Compose(f, s.overlay)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(composed, a.Scale)
}

type sampleColorArgs struct {
	X      int                    `json:"x"`
	Y      int                    `json:"y"`
	Points []imaging.LabeledPoint `json:"points"`
}

func (s *Server) handleSampleColor(args json.RawMessage) (interface{}, error) {
	var a sampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	buf, err := s.editor.WorkingBuffer()
	if err != nil {
		return nil, err
	}
	if len(a.Points) > 0 {
		return imaging.SampleColorsMulti(buf, a.Points)
	}
	return imaging.SampleColor(buf, a.X, a.Y)
}

type exportArgs struct {
	Path   string `json:"path"`
	Format string `json:"format"`
}

// ExportResult describes an exported image. Exactly one of Path and
// ImageBase64 is set.
type ExportResult struct {
	Path        string `json:"path,omitempty"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (s *Server) handleExport(args json.RawMessage) (interface{}, error) {
	var a exportArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	buf, err := s.editor.WorkingBuffer()
	if err != nil {
		return nil, err
	}

	if a.Path != "" {
		if err := imaging.Save(buf, a.Path, s.encode); err != nil {
			return nil, err
		}
		// A later editor_load of this path must see the new file.
		s.cache.Evict(a.Path)
		log.Info().Str("path", a.Path).Msg("image exported")
		return &ExportResult{
			Path:   a.Path,
			Width:  buf.Width,
			Height: buf.Height,
			Format: strings.TrimPrefix(strings.ToLower(filepath.Ext(a.Path)), "."),
		}, nil
	}

	format := strings.ToLower(strings.TrimPrefix(a.Format, "."))
	if format == "" {
		format = "png"
	}
	var out bytes.Buffer
	if err := imaging.Encode(&out, buf, format, s.encode); err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension("." + format)
	if mimeType == "" {
		mimeType = "image/" + format
	}
	return &ExportResult{
		Width:       buf.Width,
		Height:      buf.Height,
		Format:      format,
		ImageBase64: base64.StdEncoding.EncodeToString(out.Bytes()),
		MimeType:    mimeType,
	}, nil
}
