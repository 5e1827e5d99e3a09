package llm

type CompletionRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type CompletionResponse struct {
	Content    string
	StopReason string
}
