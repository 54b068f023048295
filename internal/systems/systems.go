// Package systems declares the business systems the dashboard aggregates and
// how each of their metrics is normalized and combined. The per-system
// mapping lives here as data so the pipeline stays generic: adding a system
// or flipping a metric between weighted and unweighted averaging is a table
// change, not code.
package systems

import (
	"panorama/internal/analytics"
	"panorama/internal/records"
)

// Metric describes one numeric or qualitative field of a system.
type Metric struct {
	Name        string
	Label       string
	Aggregation analytics.Policy
	Money       bool
}

// System describes one upstream business system.
type System struct {
	Key           string
	Name          string
	Schema        records.Schema
	Metrics       []Metric
	PrimaryMetric string
}

// Metric returns the metric definition for a field name.
func (s System) Metric(name string) (Metric, bool) {
	for _, m := range s.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// PolicyTable returns the metric-name to aggregation-policy mapping the
// daily aggregator consumes.
func (s System) PolicyTable() map[string]analytics.Policy {
	table := make(map[string]analytics.Policy, len(s.Metrics))
	for _, m := range s.Metrics {
		table[m.Name] = m.Aggregation
	}
	return table
}

// IsMoneyMetric reports whether a metric renders as currency.
func (s System) IsMoneyMetric(name string) bool {
	m, ok := s.Metric(name)
	return ok && m.Money
}

var registry = []System{
	{
		Key:  "meta_ads",
		Name: "Meta Ads",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "spend", Kind: records.NumberField},
			{Name: "impressions", Kind: records.NumberField},
			{Name: "clicks", Kind: records.NumberField},
			{Name: "leads", Kind: records.NumberField},
			{Name: "cpl", Kind: records.NumberField},
			{Name: "roas", Kind: records.NumberField},
			{Name: "campaign_name", Kind: records.StringField},
		}},
		Metrics: []Metric{
			{Name: "leads", Label: "Leads", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "spend", Label: "Investimento", Aggregation: analytics.Policy{Kind: analytics.Sum}, Money: true},
			{Name: "clicks", Label: "Cliques", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "impressions", Label: "Impressões", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "cpl", Label: "CPL", Aggregation: analytics.Policy{Kind: analytics.WeightedMean, WeightField: "spend"}, Money: true},
			{Name: "roas", Label: "ROAS", Aggregation: analytics.Policy{Kind: analytics.WeightedMean, WeightField: "spend"}},
			{Name: "campaign_name", Label: "Campanha destaque", Aggregation: analytics.Policy{Kind: analytics.LatestWins}},
		},
		PrimaryMetric: "leads",
	},
	{
		Key:  "google_ads",
		Name: "Google Ads",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "spend", Kind: records.NumberField},
			{Name: "impressions", Kind: records.NumberField},
			{Name: "clicks", Kind: records.NumberField},
			{Name: "conversions", Kind: records.NumberField},
			{Name: "cpc", Kind: records.NumberField},
			{Name: "campaign_name", Kind: records.StringField},
		}},
		Metrics: []Metric{
			{Name: "conversions", Label: "Conversões", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "spend", Label: "Investimento", Aggregation: analytics.Policy{Kind: analytics.Sum}, Money: true},
			{Name: "clicks", Label: "Cliques", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "impressions", Label: "Impressões", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "cpc", Label: "CPC", Aggregation: analytics.Policy{Kind: analytics.WeightedMean, WeightField: "spend"}, Money: true},
			{Name: "campaign_name", Label: "Campanha destaque", Aggregation: analytics.Policy{Kind: analytics.LatestWins}},
		},
		PrimaryMetric: "conversions",
	},
	{
		Key:  "crm",
		Name: "CRM",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "new_leads", Kind: records.NumberField},
			{Name: "won_deals", Kind: records.NumberField},
			{Name: "lost_deals", Kind: records.NumberField},
			{Name: "pipeline_value", Kind: records.NumberField},
			{Name: "top_vendor", Kind: records.StringField},
		}},
		Metrics: []Metric{
			{Name: "new_leads", Label: "Novos leads", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "won_deals", Label: "Negócios ganhos", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "lost_deals", Label: "Negócios perdidos", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "pipeline_value", Label: "Valor em pipeline", Aggregation: analytics.Policy{Kind: analytics.Sum}, Money: true},
			{Name: "top_vendor", Label: "Vendedor destaque", Aggregation: analytics.Policy{Kind: analytics.LatestWins}},
		},
		PrimaryMetric: "new_leads",
	},
	{
		Key:  "finance",
		Name: "Financeiro",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "revenue", Kind: records.NumberField},
			{Name: "expenses", Kind: records.NumberField},
			{Name: "invoices_issued", Kind: records.NumberField},
			{Name: "top_client", Kind: records.StringField},
		}},
		Metrics: []Metric{
			{Name: "revenue", Label: "Receita", Aggregation: analytics.Policy{Kind: analytics.Sum}, Money: true},
			{Name: "expenses", Label: "Despesas", Aggregation: analytics.Policy{Kind: analytics.Sum}, Money: true},
			{Name: "invoices_issued", Label: "Notas emitidas", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "top_client", Label: "Cliente destaque", Aggregation: analytics.Policy{Kind: analytics.LatestWins}},
		},
		PrimaryMetric: "revenue",
	},
	{
		Key:  "support",
		Name: "Suporte",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "tickets_opened", Kind: records.NumberField},
			{Name: "tickets_resolved", Kind: records.NumberField},
			{Name: "avg_response_minutes", Kind: records.NumberField},
			{Name: "satisfaction_score", Kind: records.NumberField},
		}},
		Metrics: []Metric{
			{Name: "tickets_opened", Label: "Tickets abertos", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "tickets_resolved", Label: "Tickets resolvidos", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "avg_response_minutes", Label: "Tempo médio de resposta (min)", Aggregation: analytics.Policy{Kind: analytics.Mean}},
			{Name: "satisfaction_score", Label: "Satisfação", Aggregation: analytics.Policy{Kind: analytics.Mean}},
		},
		PrimaryMetric: "tickets_opened",
	},
	{
		Key:  "automation",
		Name: "Automação",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "workflows_executed", Kind: records.NumberField},
			{Name: "tasks_completed", Kind: records.NumberField},
			{Name: "errors", Kind: records.NumberField},
		}},
		Metrics: []Metric{
			{Name: "workflows_executed", Label: "Fluxos executados", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "tasks_completed", Label: "Tarefas concluídas", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "errors", Label: "Erros", Aggregation: analytics.Policy{Kind: analytics.Sum}},
		},
		PrimaryMetric: "workflows_executed",
	},
	{
		Key:  "whatsapp",
		Name: "WhatsApp",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "messages_sent", Kind: records.NumberField},
			{Name: "conversations", Kind: records.NumberField},
			{Name: "delivery_rate", Kind: records.NumberField},
			{Name: "read_rate", Kind: records.NumberField},
		}},
		Metrics: []Metric{
			{Name: "messages_sent", Label: "Mensagens enviadas", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "conversations", Label: "Conversas", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "delivery_rate", Label: "Taxa de entrega", Aggregation: analytics.Policy{Kind: analytics.Mean}},
			{Name: "read_rate", Label: "Taxa de leitura", Aggregation: analytics.Policy{Kind: analytics.Mean}},
		},
		PrimaryMetric: "messages_sent",
	},
	{
		Key:  "email_marketing",
		Name: "E-mail Marketing",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "emails_sent", Kind: records.NumberField},
			{Name: "open_rate", Kind: records.NumberField},
			{Name: "click_rate", Kind: records.NumberField},
			{Name: "unsubscribes", Kind: records.NumberField},
		}},
		Metrics: []Metric{
			{Name: "emails_sent", Label: "E-mails enviados", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "open_rate", Label: "Taxa de abertura", Aggregation: analytics.Policy{Kind: analytics.Mean}},
			{Name: "click_rate", Label: "Taxa de clique", Aggregation: analytics.Policy{Kind: analytics.Mean}},
			{Name: "unsubscribes", Label: "Descadastros", Aggregation: analytics.Policy{Kind: analytics.Sum}},
		},
		PrimaryMetric: "emails_sent",
	},
	{
		Key:  "ecommerce",
		Name: "E-commerce",
		Schema: records.Schema{Fields: []records.Field{
			{Name: "orders", Kind: records.NumberField},
			{Name: "revenue", Kind: records.NumberField},
			{Name: "avg_ticket", Kind: records.NumberField},
			{Name: "abandoned_carts", Kind: records.NumberField},
		}},
		Metrics: []Metric{
			{Name: "orders", Label: "Pedidos", Aggregation: analytics.Policy{Kind: analytics.Sum}},
			{Name: "revenue", Label: "Receita", Aggregation: analytics.Policy{Kind: analytics.Sum}, Money: true},
			{Name: "avg_ticket", Label: "Ticket médio", Aggregation: analytics.Policy{Kind: analytics.WeightedMean, WeightField: "orders"}, Money: true},
			{Name: "abandoned_carts", Label: "Carrinhos abandonados", Aggregation: analytics.Policy{Kind: analytics.Sum}},
		},
		PrimaryMetric: "orders",
	},
}

// All returns every registered system in display order.
func All() []System {
	return registry
}

// ByKey looks a system up by its key.
func ByKey(key string) (System, bool) {
	for _, s := range registry {
		if s.Key == key {
			return s, true
		}
	}
	return System{}, false
}

// Keys returns the registered system keys in display order.
func Keys() []string {
	keys := make([]string, len(registry))
	for i, s := range registry {
		keys[i] = s.Key
	}
	return keys
}
