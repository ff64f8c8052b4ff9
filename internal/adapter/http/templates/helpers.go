package templates

import (
	"strconv"

	"github.com/bnema/splice/internal/domain"
)

func progressValue(run *domain.Run) string {
	return strconv.Itoa(int(run.Progress*100 + 0.5))
}
