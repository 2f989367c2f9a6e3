package tools

// DefaultRegistry builds the standard tool set: file_reader,
// web_search, web_fetch and calculator, in that order.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, tool := range []Tool{
		&FileReaderTool{},
		NewWebSearchTool(),
		NewWebFetchTool(),
		&CalculatorTool{},
	} {
		if err := r.Register(tool); err != nil {
			return nil, err
		}
	}
	return r, nil
}
