package patient

import (
	"strings"

	"github.com/chartsense/chartsense/internal/domain/knowledge"
)

var groupKeywords = []struct {
	group    string
	keywords []string
}{
	{knowledge.GroupCAP, []string{"ไข้", "ไอ", "ปอด"}},
	{knowledge.GroupDM, []string{"น้ำตาล", "เบาหวาน", "แผล", "ซึม"}},
	{knowledge.GroupHF, []string{"หอบ", "บวม", "หัวใจ", "เหนื่อย"}},
}

// DiseaseGroup classifies a chief complaint by keyword. The first group with
// a matching keyword wins; anything else is CAP.
func DiseaseGroup(chiefComplaint string) string {
	for _, g := range groupKeywords {
		for _, kw := range g.keywords {
			if strings.Contains(chiefComplaint, kw) {
				return g.group
			}
		}
	}
	return knowledge.GroupCAP
}
