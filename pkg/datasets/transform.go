package datasets

import (
	"fmt"
	"strings"
)

// TransformFunc turns a raw portal export into the published CSV text.
type TransformFunc func(def Definition, raw []byte) (string, error)

// Transforms maps each dataset to its transform.
var Transforms = map[string]TransformFunc{
	Licenses:   TransformLicenses,
	BackupSets: TransformBackupSets,
	Groups:     TransformGroups,
}

// TransformLicenses normalizes the usage percentage, strips the "%" the
// portal appends to the status column and derives the externalized-storage
// ratio.
func TransformLicenses(def Definition, raw []byte) (string, error) {
	table, err := ParseExport(def, raw)
	if err != nil {
		return "", err
	}

	usageIdx, err := def.SourceIndex(colUsage)
	if err != nil {
		return "", err
	}
	statusIdx, err := def.SourceIndex(colStatus)
	if err != nil {
		return "", err
	}
	quotaIdx, err := def.SourceIndex(colQuota)
	if err != nil {
		return "", err
	}
	externalizedIdx, err := def.SourceIndex(colExternalized)
	if err != nil {
		return "", err
	}

	ratios := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		usage, err := parsePercent(row[usageIdx])
		if err != nil {
			return "", fmt.Errorf("licenses row %d: invalid usage %q: %w", i+1, row[usageIdx], err)
		}
		row[usageIdx] = formatDecimal(usage)

		row[statusIdx] = strings.TrimSuffix(strings.TrimSpace(row[statusIdx]), "%")

		quota, err := parseDecimal(row[quotaIdx])
		if err != nil {
			return "", fmt.Errorf("licenses row %d: invalid quota %q: %w", i+1, row[quotaIdx], err)
		}
		externalized, err := parseDecimal(row[externalizedIdx])
		if err != nil {
			return "", fmt.Errorf("licenses row %d: invalid externalized storage %q: %w",
				i+1, row[externalizedIdx], err)
		}
		ratios[i] = formatDecimal(ratio(externalized, quota))
	}

	if err := table.AppendColumn(ratioHeader, ratios); err != nil {
		return "", err
	}
	return table.Render()
}

// TransformBackupSets drops the rows whose status is exactly "Ok", keeping
// only the backup sets that need attention.
func TransformBackupSets(def Definition, raw []byte) (string, error) {
	table, err := ParseExport(def, raw)
	if err != nil {
		return "", err
	}

	statusIdx, err := def.SourceIndex(colStatus)
	if err != nil {
		return "", err
	}

	kept := table.Rows[:0]
	for _, row := range table.Rows {
		if row[statusIdx] == "Ok" {
			continue
		}
		kept = append(kept, row)
	}
	table.Rows = kept

	return table.Render()
}

// TransformGroups normalizes the used-space figure and derives the quota
// usage ratio.
func TransformGroups(def Definition, raw []byte) (string, error) {
	table, err := ParseExport(def, raw)
	if err != nil {
		return "", err
	}

	usedIdx, err := def.SourceIndex(colUsedSpace)
	if err != nil {
		return "", err
	}
	quotaIdx, err := def.SourceIndex(colQuota)
	if err != nil {
		return "", err
	}

	ratios := make([]string, len(table.Rows))
	for i, row := range table.Rows {
		used, err := parseDecimal(row[usedIdx])
		if err != nil {
			return "", fmt.Errorf("groups row %d: invalid used space %q: %w", i+1, row[usedIdx], err)
		}
		row[usedIdx] = formatDecimal(used)

		quota, err := parseDecimal(row[quotaIdx])
		if err != nil {
			return "", fmt.Errorf("groups row %d: invalid quota %q: %w", i+1, row[quotaIdx], err)
		}
		ratios[i] = formatDecimal(ratio(used, quota))
	}

	if err := table.AppendColumn(ratioHeader, ratios); err != nil {
		return "", err
	}
	return table.Render()
}
