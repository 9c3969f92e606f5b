package api

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status   string   `json:"status" example:"ok"`
	Docs     []string `json:"docs" example:"intro,api"`
	Sessions int      `json:"sessions" example:"2"`
}

// DocumentItem is one entry of GET /docs.
type DocumentItem struct {
	Name string `json:"name" example:"intro"`
	URI  string `json:"uri" example:"docs://intro"`
}

// DocumentListResponse wraps the document listing.
type DocumentListResponse struct {
	Docs  []DocumentItem `json:"docs"`
	Total int            `json:"total" example:"2"`
}

// Discovery is the document served at /.well-known/mcp.json.
type Discovery struct {
	Name         string       `json:"name" example:"docs-mcp-server"`
	Version      string       `json:"version" example:"1.0.0"`
	Transport    string       `json:"transport" example:"sse"`
	Endpoints    Endpoints    `json:"endpoints"`
	Capabilities Capabilities `json:"capabilities"`
}

// Endpoints lists the transport paths a client should connect to. Only the
// paths of the active transport are set.
type Endpoints struct {
	SSE     string `json:"sse,omitempty" example:"/sse"`
	Message string `json:"message,omitempty" example:"/messages"`
	HTTP    string `json:"http,omitempty" example:"/mcp"`
}

// Capabilities advertises which MCP features the server exposes.
type Capabilities struct {
	Resources bool `json:"resources"`
	Tools     bool `json:"tools"`
}
