// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/awsctl/internal/attrs"
	"github.com/tfctl/awsctl/internal/driller"
	"github.com/tfctl/awsctl/internal/log"
)

// filterRegex splits an expression into key, optionally negated operator and
// target.
var filterRegex = regexp.MustCompile(`^([^!=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is one parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses spec. Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	delim := ","
	if d, ok := os.LookupEnv("AWSCTL_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Errorf("invalid filter: %s", filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		if key == "" {
			log.Errorf("invalid filter: empty key in %s", filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		operand = strings.TrimPrefix(operand, "!")

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   parts[3],
		})
	}

	return filters
}

// FilterDataset returns the rows of candidates matching spec, each reduced to
// the columns of list keyed by output key. Transforms are left to the
// renderer.
func FilterDataset(candidates gjson.Result, list attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var results []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, list, filters) {
			continue
		}

		row := make(map[string]interface{}, len(list))
		for _, attr := range list {
			if attr.Key == "*" {
				continue
			}
			row[attr.OutputKey] = driller.Driller(candidate.Raw, attr.Key).Value()
		}
		results = append(results, row)
	}

	log.Debugf("rows filtered: candidates=%d, kept=%d", len(candidates.Array()), len(results))
	return results
}

// applyFilters reports whether candidate matches every filter.
func applyFilters(candidate gjson.Result, list attrs.AttrList, filters []Filter) bool {
	for _, filter := range filters {
		key := filter.Key
		for _, attr := range list {
			if attr.OutputKey == filter.Key {
				key = attr.Key
				break
			}
		}

		value := driller.Driller(candidate.Raw, key).Value()
		if value == nil {
			return filter.Negate && filter.Operand != ""
		}

		var ok bool
		switch v := value.(type) {
		case string:
			ok = checkStringOperand(v, filter)
		case bool:
			ok = checkStringOperand(strconv.FormatBool(v), filter)
		case float64:
			ok = checkNumericOperand(v, filter)
		default:
			ok = checkContainsOperand(value, filter)
		}
		if !ok {
			return false
		}
	}

	return true
}

// checkContainsOperand tests membership in a list or map with @.
func checkContainsOperand(value interface{}, filter Filter) bool {
	if filter.Operand == "" {
		return true
	}
	if filter.Operand != "@" {
		log.Errorf("unsupported operand %s for %T", filter.Operand, value)
		return false
	}

	found := false
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if fmt.Sprint(item) == filter.Value {
				found = true
				break
			}
		}
	case map[string]interface{}:
		_, found = v[filter.Value]
	default:
		log.Errorf("unsupported type for contains filtering: %T", value)
		return false
	}
	return found != filter.Negate
}

// checkNumericOperand compares numerically for =, < and >. Other operators
// and non-numeric targets compare the value as a string.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil || !strings.ContainsAny(filter.Operand, "=<>") {
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) != filter.Negate
	case ">":
		return (value > tgt) != filter.Negate
	default:
		return (value < tgt) != filter.Negate
	}
}

// checkStringOperand compares value against the filter target.
func checkStringOperand(value string, filter Filter) bool {
	var ok bool
	switch filter.Operand {
	case "":
		// A bare key keeps rows where the key is present.
		return true
	case "=":
		ok = value == filter.Value
	case "~":
		ok = strings.EqualFold(value, filter.Value)
	case "^":
		ok = strings.HasPrefix(value, filter.Value)
	case ">":
		ok = value > filter.Value
	case "<":
		ok = value < filter.Value
	case "@":
		ok = strings.Contains(value, filter.Value)
	case "/":
		re, err := regexp.Compile(filter.Value)
		if err != nil {
			log.Errorf("invalid regex: %s", filter.Value)
			return false
		}
		ok = re.MatchString(value)
	default:
		log.Errorf("unsupported filtering operand: %s", filter.Operand)
		return false
	}
	return ok != filter.Negate
}
