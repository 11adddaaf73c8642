package scoring

// Grade 등급 (S/A/B/C/D)
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// 절대 등급 임계값
const (
	ThresholdS = 90.0
	ThresholdA = 80.0
	ThresholdB = 70.0
	ThresholdC = 60.0
)

// GradeOf 절대 임계값으로 단일 점수 등급 산정
func GradeOf(score float64) Grade {
	switch {
	case score >= ThresholdS:
		return GradeS
	case score >= ThresholdA:
		return GradeA
	case score >= ThresholdB:
		return GradeB
	case score >= ThresholdC:
		return GradeC
	default:
		return GradeD
	}
}

var recommendations = map[Grade]string{
	GradeS: "강력 추천! 매우 높은 ROI가 예상됩니다.",
	GradeA: "적극 추천합니다. 높은 ROI가 예상됩니다.",
	GradeB: "추천합니다. 양호한 성과가 예상됩니다.",
	GradeC: "보통 수준입니다. 신중한 검토가 필요합니다.",
	GradeD: "권장하지 않음. 다른 인플루언서를 고려해보세요.",
}

// Recommendation 등급별 고정 추천 문구
func Recommendation(g Grade) string {
	if msg, ok := recommendations[g]; ok {
		return msg
	}
	return "분석 결과를 검토해주세요."
}
