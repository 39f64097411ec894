package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/region-map-service/internal/domain/repository"
	"github.com/region-map-service/internal/pkg/geoname"
)

// MaxDepth - глубина полного пути: штат, район, подрайон, совет
const MaxDepth = 4

// документ india_state_data.json
type stateDoc struct {
	Districts map[string]districtDoc `json:"districts"`
}

type districtDoc struct {
	Talukas map[string]talukaDoc `json:"talukas"`
}

type talukaDoc struct {
	Panchayats map[string][]string `json:"panchayats"`
}

// node - уровень индекса; на последнем уровне заполнен villages
type node struct {
	keys     []string
	children map[string]*node
	villages []string
}

type index struct {
	root        *node
	stateByFold map[string]string
}

// Load читает JSON документ иерархии
func Load(path string, logger *zap.Logger) (repository.HierarchyRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hierarchy %s: %w", path, err)
	}
	return Parse(data, logger)
}

// Parse строит индекс из JSON. Пустые уровни отбрасываются, чтобы у каждого
// ключа был непустой следующий уровень.
func Parse(data []byte, logger *zap.Logger) (repository.HierarchyRepository, error) {
	var doc map[string]stateDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse hierarchy: %w", err)
	}

	idx := &index{
		root:        &node{children: make(map[string]*node)},
		stateByFold: make(map[string]string),
	}

	villages := 0
	for state, sd := range doc {
		stateNode := &node{children: make(map[string]*node)}
		for district, dd := range sd.Districts {
			districtNode := &node{children: make(map[string]*node)}
			for taluka, td := range dd.Talukas {
				talukaNode := &node{children: make(map[string]*node)}
				for council, vs := range td.Panchayats {
					if len(vs) == 0 {
						continue
					}
					talukaNode.children[council] = &node{villages: append([]string(nil), vs...)}
					villages += len(vs)
				}
				attach(districtNode, taluka, talukaNode)
			}
			attach(stateNode, district, districtNode)
		}
		if attach(idx.root, state, stateNode) {
			idx.stateByFold[geoname.Normalize(state)] = state
		}
	}
	finalize(idx.root)

	logger.Info("Hierarchy index loaded",
		zap.Int("states", len(idx.root.keys)),
		zap.Int("villages", villages),
	)

	return idx, nil
}

// attach добавляет child только если у него есть потомки
func attach(parent *node, key string, child *node) bool {
	if len(child.children) == 0 {
		return false
	}
	parent.children[key] = child
	return true
}

// finalize сортирует ключи на каждом уровне; деревни сохраняют исходный порядок
func finalize(n *node) {
	if n.children == nil {
		return
	}
	n.keys = make([]string, 0, len(n.children))
	for k, child := range n.children {
		n.keys = append(n.keys, k)
		finalize(child)
	}
	sort.Strings(n.keys)
}

// ChildrenOf возвращает копию ключей следующего уровня
func (i *index) ChildrenOf(path ...string) []string {
	if len(path) > MaxDepth {
		return []string{}
	}

	n := i.root
	for _, segment := range path {
		next, ok := n.children[segment]
		if !ok {
			return []string{}
		}
		n = next
	}

	if n.villages != nil {
		return append([]string{}, n.villages...)
	}
	return append([]string{}, n.keys...)
}

// ResolveState ищет ключ штата без учёта регистра
func (i *index) ResolveState(name string) (string, bool) {
	state, ok := i.stateByFold[geoname.Normalize(name)]
	return state, ok
}
