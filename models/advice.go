package models

import "time"

// ============================================================================
// AI ADVISOR
// ============================================================================

// Advice is the structured report returned by the advisor. The field names are
// the wire contract consumed by the frontend; do not rename them.
type Advice struct {
	Diagnostico               string         `json:"diagnostico"`
	PontosAtencao             []string       `json:"pontos_atencao"`
	Estrategia                []StrategyStep `json:"estrategia"`
	RecomendacaoInvestimentos string         `json:"recomendacao_investimentos"`
}

type StrategyStep struct {
	Titulo  string `json:"titulo"`
	Detalhe string `json:"detalhe"`
}

type AdviceResponse struct {
	Advice    Advice    `json:"advice"`
	Cached    bool      `json:"cached"`
	CreatedAt time.Time `json:"created_at"`
}
