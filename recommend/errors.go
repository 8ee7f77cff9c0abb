package recommend

import "errors"

// Erros sentinela do motor. "Sem sinal" (usuário sem histórico/interesses)
// NÃO é erro: degrada para recomendação por recência.
var (
	ErrUserNotFound           = errors.New("usuário não encontrado")
	ErrPaperNotFound          = errors.New("paper não encontrado")
	ErrRecommendationNotFound = errors.New("recomendação não encontrada")
)
