package planner

import (
	"fmt"
	"strings"
)

const (
	shortTimelineWeeks = 8
	longTimelineWeeks  = 16
	maxAdviceNotes     = 2
)

var genericNotes = []string{
	"Her çalışma gününü kısa bir tekrar ile kapatın; ertesi gün aynı konuya dönmek kolaylaşır.",
	"Planı esnek tutun: kaçan bir bloğu ertesi günün ilk saatine taşıyın, birikmesine izin vermeyin.",
}

// buildNotes assembles the advisory list: two generic notes always, a
// weak-area note when any subject carries a rating of 2 or below, up to two
// exam-type advice entries, and a timeline note for compressed or long-haul
// preparation windows. Unknown exam types simply skip the advice entries.
func buildNotes(advice []string, weakAreas []string, totalWeeks int) []string {
	notes := make([]string, 0, len(genericNotes)+maxAdviceNotes+2)
	notes = append(notes, genericNotes...)

	if len(weakAreas) > 0 {
		notes = append(notes, fmt.Sprintf(
			"Zayıf alanlarınız (%s) programda daha fazla süre aldı; bu bloklarda soru çözümünü ihmal etmeyin.",
			strings.Join(weakAreas, ", "),
		))
	}

	for i, entry := range advice {
		if i >= maxAdviceNotes {
			break
		}
		notes = append(notes, entry)
	}

	switch {
	case totalWeeks < shortTimelineWeeks:
		notes = append(notes, "Süreniz kısıtlı: yeni konu yerine en çok puan getiren konuların tekrarına öncelik verin.")
	case totalWeeks > longTimelineWeeks:
		notes = append(notes, "Uzun bir hazırlık dönemi sizi bekliyor; motivasyonu korumak için haftalık küçük hedefler belirleyin.")
	}

	return notes
}
