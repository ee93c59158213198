package catalog

import (
	"fmt"
	"sort"
)

// ExamType selects which subject catalog and advice table apply.
type ExamType string

const (
	ExamYKS  ExamType = "YKS"
	ExamLGS  ExamType = "LGS"
	ExamKPSS ExamType = "KPSS"
)

// SubjectDefinition is static reference data for one subject: a base
// difficulty in [1,5] and an ordered topic list. Never mutated at runtime.
type SubjectDefinition struct {
	Name       string   `json:"name"`
	Difficulty int      `json:"difficulty"`
	Topics     []string `json:"topics"`
}

// Registry is an immutable lookup of exam-type catalogs and advice tables.
// Construct once at startup and share; reads are safe from any goroutine.
type Registry struct {
	subjects map[ExamType][]SubjectDefinition
	advice   map[ExamType][]string
}

// NewRegistry returns a registry seeded with the built-in exam catalogs.
func NewRegistry() *Registry {
	return &Registry{
		subjects: builtinCatalogs,
		advice:   builtinAdvice,
	}
}

// NewCustomRegistry builds a registry from caller-supplied catalogs, failing
// fast on degenerate definitions so allocation can never divide by zero.
func NewCustomRegistry(subjects map[ExamType][]SubjectDefinition, advice map[ExamType][]string) (*Registry, error) {
	for examType, defs := range subjects {
		if err := Validate(defs); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", examType, err)
		}
	}
	if advice == nil {
		advice = map[ExamType][]string{}
	}
	return &Registry{subjects: subjects, advice: advice}, nil
}

// Subjects returns the catalog for an exam type in definition order.
func (r *Registry) Subjects(examType ExamType) ([]SubjectDefinition, bool) {
	defs, ok := r.subjects[examType]
	return defs, ok
}

// Advice returns the exam-type specific study advice, nil for unknown types.
func (r *Registry) Advice(examType ExamType) []string {
	return r.advice[examType]
}

// Known reports whether the exam type resolves to a catalog.
func (r *Registry) Known(examType ExamType) bool {
	_, ok := r.subjects[examType]
	return ok
}

// ExamTypes lists the registered exam type tags, sorted for stable output.
func (r *Registry) ExamTypes() []ExamType {
	types := make([]ExamType, 0, len(r.subjects))
	for examType := range r.subjects {
		types = append(types, examType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Validate rejects catalogs that would break allocation: empty subject lists,
// subjects without topics, or difficulties outside [1,5].
func Validate(defs []SubjectDefinition) error {
	if len(defs) == 0 {
		return fmt.Errorf("catalog has no subjects")
	}
	for _, def := range defs {
		if def.Name == "" {
			return fmt.Errorf("subject with empty name")
		}
		if def.Difficulty < 1 || def.Difficulty > 5 {
			return fmt.Errorf("subject %s: difficulty %d outside [1,5]", def.Name, def.Difficulty)
		}
		if len(def.Topics) == 0 {
			return fmt.Errorf("subject %s: no topics", def.Name)
		}
	}
	return nil
}

var builtinCatalogs = map[ExamType][]SubjectDefinition{
	ExamYKS: {
		{Name: "Matematik", Difficulty: 5, Topics: []string{
			"Temel Kavramlar", "Sayı Basamakları", "Bölme ve Bölünebilme", "Rasyonel Sayılar",
			"Denklemler", "Problemler", "Fonksiyonlar", "Polinomlar", "Trigonometri", "Türev", "İntegral",
		}},
		{Name: "Fizik", Difficulty: 4, Topics: []string{
			"Fizik Bilimine Giriş", "Madde ve Özellikleri", "Hareket ve Kuvvet",
			"Enerji", "Elektrik", "Manyetizma", "Optik", "Dalgalar",
		}},
		{Name: "Kimya", Difficulty: 4, Topics: []string{
			"Kimya Bilimi", "Atom ve Periyodik Sistem", "Kimyasal Türler Arası Etkileşimler",
			"Maddenin Halleri", "Kimyasal Tepkimeler", "Asitler ve Bazlar", "Organik Kimya",
		}},
		{Name: "Biyoloji", Difficulty: 3, Topics: []string{
			"Canlıların Ortak Özellikleri", "Hücre", "Kalıtım",
			"Ekosistem", "Bitki Biyolojisi", "İnsan Fizyolojisi",
		}},
		{Name: "Türkçe", Difficulty: 3, Topics: []string{
			"Sözcükte Anlam", "Cümlede Anlam", "Paragraf",
			"Dil Bilgisi", "Yazım Kuralları", "Noktalama İşaretleri",
		}},
	},
	ExamLGS: {
		{Name: "Matematik", Difficulty: 5, Topics: []string{
			"Çarpanlar ve Katlar", "Üslü İfadeler", "Kareköklü İfadeler",
			"Veri Analizi", "Olasılık", "Cebirsel İfadeler", "Doğrusal Denklemler", "Eşitsizlikler",
		}},
		{Name: "Fen Bilimleri", Difficulty: 4, Topics: []string{
			"Mevsimler ve İklim", "DNA ve Genetik Kod", "Basınç",
			"Madde ve Endüstri", "Basit Makineler", "Enerji Dönüşümleri",
		}},
		{Name: "Türkçe", Difficulty: 3, Topics: []string{
			"Sözcükte Anlam", "Cümlede Anlam", "Paragrafta Anlam",
			"Metin Türleri", "Yazım Kuralları", "Noktalama",
		}},
		{Name: "İnkılap Tarihi", Difficulty: 2, Topics: []string{
			"Bir Kahraman Doğuyor", "Milli Uyanış", "Milli Bir Destan",
			"Atatürkçülük", "Demokratikleşme Çabaları",
		}},
		{Name: "İngilizce", Difficulty: 2, Topics: []string{
			"Friendship", "Teen Life", "The Internet", "Adventures", "Tourism",
		}},
	},
	ExamKPSS: {
		{Name: "Genel Yetenek", Difficulty: 4, Topics: []string{
			"Sözel Mantık", "Sayısal Mantık", "Problemler", "Temel Matematik", "Geometri",
		}},
		{Name: "Tarih", Difficulty: 3, Topics: []string{
			"İslamiyet Öncesi Türk Tarihi", "Osmanlı Devleti", "Kurtuluş Savaşı",
			"Cumhuriyet Dönemi", "Çağdaş Türk ve Dünya Tarihi",
		}},
		{Name: "Coğrafya", Difficulty: 3, Topics: []string{
			"Türkiye'nin Coğrafi Konumu", "İklim ve Bitki Örtüsü", "Nüfus ve Yerleşme",
			"Ekonomik Coğrafya", "Bölgeler",
		}},
		{Name: "Vatandaşlık", Difficulty: 2, Topics: []string{
			"Hukukun Temel Kavramları", "Anayasa", "Yasama", "Yürütme", "Yargı",
		}},
	},
}

var builtinAdvice = map[ExamType][]string{
	ExamYKS: {
		"Deneme sınavlarını gerçek sınav saatinde çözerek tempo kazanın.",
		"Türev ve integral sorularında önce temel fonksiyon bilgisini sağlamlaştırın.",
	},
	ExamLGS: {
		"Paragraf sorularında günlük düzenli okuma alışkanlığı net artışının anahtarıdır.",
		"Yeni nesil matematik soruları için günlük en az beş problem çözün.",
	},
	ExamKPSS: {
		"Tarih ve coğrafyada bol tekrar, vatandaşlıkta güncel anayasa değişikliklerini takip edin.",
		"Genel yetenek hız gerektirir; süre tutarak soru çözme pratiği yapın.",
	},
}
