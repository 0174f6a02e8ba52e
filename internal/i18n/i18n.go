package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

type Translator interface {
	T(key string, args ...any) string
}

var supported = []language.Tag{language.English, language.SimplifiedChinese}

var messages = map[language.Tag]map[string]string{
	language.English: {
		"login":                               "Login",
		"login-require":                       "Please login to use this model",
		"login-title":                         "Login",
		"login-prompt":                        "Paste your personal API token",
		"login-success":                       "Logged in",
		"login-failed":                        "Login failed",
		"end":                                 ".",
		"conversation.empty":                  "No conversations yet",
		"conversation.refresh-failed":         "Refresh failed",
		"conversation.refresh-failed-prompt":  "Could not load the conversation list, please try again later.",
		"conversation.remove-title":           "Delete conversation?",
		"conversation.remove-description":     "This permanently deletes the conversation ",
		"conversation.cancel":                 "Cancel",
		"conversation.delete":                 "Delete",
		"conversation.delete-success":         "Conversation deleted",
		"conversation.delete-success-prompt":  "The conversation has been removed.",
		"conversation.delete-failed":          "Delete failed",
		"conversation.delete-failed-prompt":   "The conversation could not be deleted, please try again later.",
		"chat.placeholder":                    "Write something...",
		"chat.web":                            "Web search",
		"chat.request-failed":                 "Request failed: %s",
		"chat.file-too-large":                 "File is too large (max %d characters)",
		"chat.file-failed":                    "Could not read file",
		"chat.file-prompt":                    "Attach file (path)",
		"chat.select-model":                   "Select Model",
		"generate.title":                      "Generate a project",
		"generate.description":                "Describe a project and let the model scaffold it.",
	},
	language.SimplifiedChinese: {
		"login":                               "登录",
		"login-require":                       "请先登录后使用此模型",
		"login-title":                         "登录",
		"login-prompt":                        "粘贴你的个人 API 令牌",
		"login-success":                       "登录成功",
		"login-failed":                        "登录失败",
		"end":                                 "。",
		"conversation.empty":                  "暂无对话",
		"conversation.refresh-failed":         "刷新失败",
		"conversation.refresh-failed-prompt":  "无法加载对话列表，请稍后再试。",
		"conversation.remove-title":           "删除对话？",
		"conversation.remove-description":     "将永久删除对话 ",
		"conversation.cancel":                 "取消",
		"conversation.delete":                 "删除",
		"conversation.delete-success":         "删除成功",
		"conversation.delete-success-prompt":  "对话已删除。",
		"conversation.delete-failed":          "删除失败",
		"conversation.delete-failed-prompt":   "对话删除失败，请稍后再试。",
		"chat.placeholder":                    "写点什么...",
		"chat.web":                            "联网搜索",
		"chat.request-failed":                 "请求失败：%s",
		"chat.file-too-large":                 "文件过大（最多 %d 个字符）",
		"chat.file-failed":                    "无法读取文件",
		"chat.file-prompt":                    "附加文件（路径）",
		"chat.select-model":                   "选择模型",
		"generate.title":                      "生成项目",
		"generate.description":                "描述一个项目，让模型为你生成。",
	},
}

type printer struct {
	p *message.Printer
}

// New returns a translator for lang ("en", "zh", "zh-CN", ...).
// Unknown languages fall back to English; unknown keys render as the key.
func New(lang string) Translator {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range messages {
		for key, msg := range entries {
			_ = builder.SetString(tag, key, msg)
		}
	}

	tag := language.English
	if requested, err := language.Parse(lang); err == nil {
		matcher := language.NewMatcher(supported)
		_, idx, conf := matcher.Match(requested)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return printer{p: message.NewPrinter(tag, message.Catalog(builder))}
}

func (t printer) T(key string, args ...any) string {
	return t.p.Sprintf(key, args...)
}
