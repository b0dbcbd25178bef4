package performance

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"PerfDash/entity"
)

const (
	ContentTypeCSV = "text/csv;charset=utf-8"

	SectionKPI        = "kpi"
	SectionConsultant = "ranking_consultor"
	SectionSchool     = "ranking_escola"
	SectionTrend      = "evolucao_semanal"
)

type KPI struct {
	Key   string
	Value int
}

// KPIs lists the summary values in export order.
func KPIs(s entity.Summary) []KPI {
	return []KPI{
		{"consultores_ativos", s.ActiveConsultants},
		{"consultores_ferias", s.VacationConsultants},
		{"consultores_total", s.TotalConsultants},
		{"educadores_total", s.TotalEducators},
		{"escolas_total", s.TotalSchools},
		{"escolas_sem_visita_30d", s.SchoolsWithoutRecentVisit},
		{"visitas_30d", s.Last30Total},
		{"visitas_semana", s.WeekTotal},
		{"visitas_semana_concluidas", s.WeekCompleted},
		{"visitas_semana_canceladas", s.WeekCancelled},
		{"taxa_conclusao_semana", s.WeekCompletionRate},
		{"taxa_cancelamento_semana", s.WeekCancellationRate},
		{"visitas_mes", s.MonthTotal},
		{"visitas_mes_concluidas", s.MonthCompleted},
		{"visitas_mes_canceladas", s.MonthCancelled},
		{"taxa_conclusao_mes", s.MonthCompletionRate},
		{"taxa_cancelamento_mes", s.MonthCancellationRate},
		{"educadores_ativos_7d", s.EducatorsActive7d},
		{"educadores_ativos_30d", s.EducatorsActive30d},
		{"educadores_inativos_14d", s.EducatorsInactive14},
		{"taxa_acesso_7d", s.AccessRate7d},
		{"taxa_acesso_30d", s.AccessRate30d},
		{"variacao_acesso", s.AccessDeltaRate},
	}
}

// ExportFilename names the download after the report day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("performance-rede-%s.csv", now.Format("20060102"))
}

// WriteCSV serializes the report as semicolon separated rows:
//
//	kpi;<key>;<value>
//	ranking_consultor;<name>;<total>;<completed>;<cancelled>;<rate>
//	ranking_escola;<name>;<total>;<completed>;<cancelled>;<rate>
//	evolucao_semanal;<monday>;<total>;<completed>;<cancelled>;<rate>
func WriteCSV(w io.Writer, report entity.Report) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	records := [][]string{{"secao", "chave", "valor"}}
	for _, kpi := range KPIs(report.Summary) {
		records = append(records, []string{SectionKPI, kpi.Key, strconv.Itoa(kpi.Value)})
	}
	for _, row := range report.ConsultantRanking {
		records = append(records, rankingRecord(SectionConsultant, row))
	}
	for _, row := range report.SchoolRanking {
		records = append(records, rankingRecord(SectionSchool, row))
	}
	for _, b := range report.WeeklyTrend {
		records = append(records, []string{
			SectionTrend,
			b.WeekStart,
			strconv.Itoa(b.Total),
			strconv.Itoa(b.Completed),
			strconv.Itoa(b.Cancelled),
			strconv.Itoa(b.CompletionRate),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func rankingRecord(section string, row entity.RankingRow) []string {
	return []string{
		section,
		row.Name,
		strconv.Itoa(row.Total),
		strconv.Itoa(row.Completed),
		strconv.Itoa(row.Cancelled),
		strconv.Itoa(row.CompletionRate),
	}
}
