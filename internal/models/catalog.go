package models

// BaselineModel is the only model available without logging in.
const BaselineModel = "gpt-3.5-turbo"

// UpgradeOnLogin maps a legacy selection to the variant it becomes once
// the user authenticates. Applied at most once per login transition.
var UpgradeOnLogin = map[string]string{
	BaselineModel: "gpt-3.5-turbo-16k",
}

var Catalog = []AIModel{
	{ID: "gpt-3.5-turbo", Name: "GPT-3.5", Provider: "OpenAI", Description: "Fast general purpose model"},
	{ID: "gpt-3.5-turbo-16k", Name: "GPT-3.5 16K", Provider: "OpenAI", Description: "Extended context window"},
	{ID: "gpt-4", Name: "GPT-4", Provider: "OpenAI", Description: "Strong reasoning"},
	{ID: "gpt-4-32k", Name: "GPT-4 32K", Provider: "OpenAI", Description: "Reasoning with long context"},
	{ID: "claude-2", Name: "Claude 2", Provider: "Anthropic", Description: "Long form writing"},
	{ID: "claude-2-100k", Name: "Claude 2 100K", Provider: "Anthropic", Description: "Very long context"},
	{ID: "gemini-pro", Name: "Gemini Pro", Provider: "Google", Description: "Multimodal model"},
}

func FindModel(id string) (AIModel, int, bool) {
	for i, mdl := range Catalog {
		if mdl.ID == id {
			return mdl, i, true
		}
	}
	return AIModel{}, 0, false
}

// UpgradeFor returns the model a legacy id is replaced with after login.
func UpgradeFor(id string) (string, bool) {
	next, ok := UpgradeOnLogin[id]
	return next, ok
}
