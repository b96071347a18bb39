package services

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kr/text"

	"github.com/DyoneNunes/controlefinanceiro/models"
)

// ============================================================================
// CONSULTOR FINANCEIRO (IA)
//
// The pipeline renders a deterministic snapshot of the group's records,
// fingerprints it and only calls the AI provider when the fingerprint has
// never been seen. The cache key therefore changes exactly when the data
// changes; there is no explicit invalidation path.
// ============================================================================

const adviceCacheTTL = 24 * time.Hour

// FinanceReader is the subset of the store the advisor needs.
type FinanceReader interface {
	Bills(ctx context.Context, groupID string) ([]models.Bill, error)
	Incomes(ctx context.Context, groupID string) ([]models.Income, error)
	RandomExpenses(ctx context.Context, groupID string) ([]models.RandomExpense, error)
	Investments(ctx context.Context, groupID string) ([]models.Investment, error)
}

type Advisor struct {
	store FinanceReader
	cache Cache
	ai    TextGenerator
}

func NewAdvisor(store FinanceReader, cache Cache, ai TextGenerator) *Advisor {
	return &Advisor{store: store, cache: cache, ai: ai}
}

// Advise returns the advisory report for the group's current data, reusing a
// cached report when the underlying records have not changed. Storage and
// provider failures are fatal for the request; cache failures never are.
func (a *Advisor) Advise(ctx context.Context, groupID string) (*models.AdviceResponse, error) {
	bills, incomes, expenses, investments, err := a.fetchAll(ctx, groupID)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(bills, incomes, expenses, investments)
	cacheKey := fmt.Sprintf("advisor:%s:%s", groupID, Fingerprint(summary))

	if cached, ok, err := a.cache.Get(ctx, cacheKey); err != nil {
		log.Printf("⚠️ Advisor cache read failed: %v", err)
	} else if ok {
		var advice models.Advice
		unmarshalErr := json.Unmarshal([]byte(cached), &advice)
		if unmarshalErr == nil {
			log.Printf("⚡ Advisor cache HIT: %s", cacheKey)
			return &models.AdviceResponse{Advice: advice, Cached: true, CreatedAt: time.Now()}, nil
		}
		log.Printf("⚠️ Advisor cache entry unreadable, regenerating: %v", unmarshalErr)
	}

	log.Printf("🐢 Advisor cache MISS, generating with Gemini: %s", cacheKey)

	raw, err := a.ai.GenerateJSON(ctx, buildAdvisorPrompt(summary))
	if err != nil {
		return nil, fmt.Errorf("AI call failed: %w", err)
	}

	advice, err := parseAdvice(raw)
	if err != nil {
		return nil, err
	}

	// Only a fully parsed report is cached, so a timed-out or malformed
	// generation can never leave a corrupt entry behind.
	if payload, err := json.Marshal(advice); err == nil {
		if err := a.cache.Set(ctx, cacheKey, string(payload), adviceCacheTTL); err != nil {
			log.Printf("⚠️ Advisor cache write failed: %v", err)
		}
	}

	return &models.AdviceResponse{Advice: *advice, Cached: false, CreatedAt: time.Now()}, nil
}

// fetchAll loads the four record types concurrently; they are independent
// reads. The first error wins and fails the whole request.
func (a *Advisor) fetchAll(ctx context.Context, groupID string) ([]models.Bill, []models.Income, []models.RandomExpense, []models.Investment, error) {
	var (
		wg          sync.WaitGroup
		bills       []models.Bill
		incomes     []models.Income
		expenses    []models.RandomExpense
		investments []models.Investment
		errs        [4]error
	)

	wg.Add(4)
	go func() { defer wg.Done(); bills, errs[0] = a.store.Bills(ctx, groupID) }()
	go func() { defer wg.Done(); incomes, errs[1] = a.store.Incomes(ctx, groupID) }()
	go func() { defer wg.Done(); expenses, errs[2] = a.store.RandomExpenses(ctx, groupID) }()
	go func() { defer wg.Done(); investments, errs[3] = a.store.Investments(ctx, groupID) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to load financial data: %w", err)
		}
	}
	return bills, incomes, expenses, investments, nil
}

// ============================================================================
// SNAPSHOT DETERMINÍSTICO
// ============================================================================

// BuildSummary renders the canonical text snapshot of the group's records.
// Field order and money formatting are stable so that identical data always
// produces identical text, and therefore an identical fingerprint.
func BuildSummary(bills []models.Bill, incomes []models.Income, expenses []models.RandomExpense, investments []models.Investment) string {
	var sb strings.Builder

	sb.WriteString("DADOS FINANCEIROS DO GRUPO (Carteira Atual):\n\n")

	sb.WriteString("1. RENDAS MENSAIS (Entradas):\n")
	if len(incomes) == 0 {
		sb.WriteString("Nenhuma renda cadastrada.\n")
	}
	for _, in := range incomes {
		fmt.Fprintf(&sb, "- %s: R$ %.2f\n", in.Description, in.Value)
	}

	sb.WriteString("\n2. CONTAS FIXAS (Obrigações):\n")
	if len(bills) == 0 {
		sb.WriteString("Nenhuma conta cadastrada.\n")
	}
	for _, b := range bills {
		fmt.Fprintf(&sb, "- %s: R$ %.2f (Status: %s, Vencimento: %s)\n",
			b.Name, b.Value, b.Status, b.DueDate.Format("2006-01-02"))
	}

	sb.WriteString("\n3. GASTOS VARIÁVEIS/ALEATÓRIOS:\n")
	if len(expenses) == 0 {
		sb.WriteString("Nenhum gasto variável recente.\n")
	}
	for _, e := range expenses {
		fmt.Fprintf(&sb, "- %s: R$ %.2f em %s\n", e.Name, e.Value, e.Date.Format("2006-01-02"))
	}

	sb.WriteString("\n4. INVESTIMENTOS ATUAIS:\n")
	if len(investments) == 0 {
		sb.WriteString("Nenhum investimento.\n")
	}
	for _, inv := range investments {
		fmt.Fprintf(&sb, "- %s: R$ %.2f (%.0f%% do CDI)\n", inv.Name, inv.InitialAmount, inv.CDIPercent)
	}

	return sb.String()
}

// Fingerprint is the 128-bit content digest of the rendered summary.
func Fingerprint(summary string) string {
	sum := md5.Sum([]byte(summary))
	return hex.EncodeToString(sum[:])
}

// ============================================================================
// PROMPT & PARSE
// ============================================================================

func buildAdvisorPrompt(summary string) string {
	return fmt.Sprintf(`Atue como um consultor financeiro pessoal altamente qualificado. Analise os dados brutos abaixo e forneça um relatório estratégico em formato JSON.

%s

O JSON deve seguir EXATAMENTE esta estrutura:
{
  "diagnostico": "Resumo curto da saúde financeira (Sobrando dinheiro? Endividado? Equilibrado?).",
  "pontos_atencao": ["Ponto 1", "Ponto 2", "Ponto 3"],
  "estrategia": [
    { "titulo": "Ação 1", "detalhe": "Descrição detalhada" },
    { "titulo": "Ação 2", "detalhe": "Descrição detalhada" },
    { "titulo": "Ação 3", "detalhe": "Descrição detalhada" }
  ],
  "recomendacao_investimentos": "Sugestão detalhada de onde alocar recursos."
}

Seja encorajador mas realista. Fale em português do Brasil.`, text.Indent(summary, "  "))
}

func parseAdvice(content string) (*models.Advice, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var advice models.Advice
	if err := json.Unmarshal([]byte(content), &advice); err != nil {
		log.Printf("[Advisor] ❌ JSON parse error: %v | Content: %s", err, content)
		return nil, fmt.Errorf("failed to unmarshal advice: %w", err)
	}

	if advice.Diagnostico == "" {
		return nil, fmt.Errorf("advice response missing diagnosis")
	}
	return &advice, nil
}
