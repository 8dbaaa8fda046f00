package consult

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

const (
	actionClose = "fechar"
	actionOK    = "ok"
)

const (
	msgNoResults          = "Nenhum resultado encontrado!"
	msgSearchFailed       = "Erro ao tentar consultar documentos!"
	msgClientsFailed      = "Erro ao tentar buscar clientes!"
	msgTypesFailed        = "Erro ao tentar adquirir tipos de documento!"
	msgClientNameFailed   = "Erro ao tentar adquirir o nome do cliente!"
	msgClientNameIs       = "Nome do cliente é: "
	msgDocumentDeleted    = "Documento deletado com sucesso!"
	msgDocumentNotDeleted = "Erro ao tentar deletar o documento!"
)

// Notice is a transient, auto-dismissing message for the user.
type Notice struct {
	Level      Level  `json:"level"`
	Message    string `json:"message"`
	Action     string `json:"action"`
	DurationMS int64  `json:"duration_ms"`
}

func (n Notice) Duration() time.Duration {
	return time.Duration(n.DurationMS) * time.Millisecond
}

func newNotice(level Level, message string, action string, duration time.Duration) Notice {
	return Notice{
		Level:      level,
		Message:    message,
		Action:     action,
		DurationMS: duration.Milliseconds(),
	}
}

// notifier receives notices from components that do not own the queue.
type notifier interface {
	notify(notice Notice)
}
