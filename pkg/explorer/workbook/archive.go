package workbook

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"
)

// SheetProtectionFacts holds the raw sheetProtection flags of one sheet.
type SheetProtectionFacts struct {
	Protected           bool
	Password            bool
	SelectLockedCells   bool
	SelectUnlockedCells bool
}

// ArchiveFacts holds workbook facts read straight from the xlsx package,
// covering attributes the cell-level API does not expose: the VBA macro
// archive, protection records, per-sheet chart and hyperlink counts, and
// autofilter presence.
type ArchiveFacts struct {
	HasMacros         bool
	WorkbookProtected bool
	WorkbookPassword  bool
	Charts            map[string]int
	Hyperlinks        map[string]int
	AutoFilter        map[string]bool
	Protection        map[string]SheetProtectionFacts
}

// InspectArchive reads structural facts from the xlsx zip package.
// Missing parts read as zero facts; only a completely unreadable archive
// returns an error.
func InspectArchive(path string) (*ArchiveFacts, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	facts := &ArchiveFacts{
		Charts:     make(map[string]int),
		Hyperlinks: make(map[string]int),
		AutoFilter: make(map[string]bool),
		Protection: make(map[string]SheetProtectionFacts),
	}

	for _, f := range r.File {
		if f.Name == "xl/vbaProject.bin" {
			facts.HasMacros = true
		}
	}

	workbookXML := readZipFile(&r.Reader, "xl/workbook.xml")
	if workbookXML == nil {
		return facts, nil
	}
	sheetRIDs := parseWorkbookXML(workbookXML, facts)
	if len(sheetRIDs) == 0 {
		return facts, nil
	}

	relsXML := readZipFile(&r.Reader, "xl/_rels/workbook.xml.rels")
	if relsXML == nil {
		return facts, nil
	}
	sheetPaths := resolveSheetPaths(relsXML, sheetRIDs)

	for sheetName, sheetPath := range sheetPaths {
		sheetXML := readZipFile(&r.Reader, sheetPath)
		if sheetXML == nil {
			continue
		}
		inspectSheetXML(sheetXML, sheetName, facts)

		relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1) + ".rels"
		sheetRels := readZipFile(&r.Reader, relsPath)
		if sheetRels == nil {
			continue
		}
		drawingPath := findDrawingTarget(sheetRels)
		if drawingPath == "" {
			continue
		}
		drawingXML := readZipFile(&r.Reader, resolvePackagePath(drawingPath, "xl/drawings"))
		if drawingXML == nil {
			continue
		}
		if n := countChartRefs(drawingXML); n > 0 {
			facts.Charts[sheetName] = n
		}
	}

	return facts, nil
}

// readZipFile reads one archive entry, returning nil when absent.
func readZipFile(r *zip.Reader, name string) []byte {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil
		}
		return data
	}
	return nil
}

// parseWorkbookXML extracts the sheet name to rId mapping and the
// workbook protection record.
func parseWorkbookXML(data []byte, facts *ArchiveFacts) map[string]string {
	rids := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sheet":
			var name, rid string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rid = attr.Value
				}
			}
			if name != "" && rid != "" {
				rids[name] = rid
			}
		case "workbookProtection":
			facts.WorkbookProtected = true
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "workbookPassword", "workbookAlgorithmName":
					if attr.Value != "" {
						facts.WorkbookPassword = true
					}
				}
			}
		}
	}
	return rids
}

// resolveSheetPaths maps sheet names to worksheet part paths using the
// workbook relationships.
func resolveSheetPaths(relsXML []byte, sheetRIDs map[string]string) map[string]string {
	targets := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(relsXML)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rid, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rid = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rid != "" && target != "" {
				targets[rid] = target
			}
		}
	}

	paths := make(map[string]string)
	for name, rid := range sheetRIDs {
		if target, ok := targets[rid]; ok {
			paths[name] = resolvePackagePath(target, "xl")
		}
	}
	return paths
}

// inspectSheetXML records protection, hyperlink and autofilter facts
// from one worksheet part.
func inspectSheetXML(data []byte, sheetName string, facts *ArchiveFacts) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	hyperlinks := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "hyperlink":
			hyperlinks++
		case "autoFilter":
			facts.AutoFilter[sheetName] = true
		case "sheetProtection":
			prot := SheetProtectionFacts{Protected: true}
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "password", "algorithmName", "hashValue":
					if attr.Value != "" {
						prot.Password = true
					}
				case "selectLockedCells":
					prot.SelectLockedCells = attr.Value == "1" || attr.Value == "true"
				case "selectUnlockedCells":
					prot.SelectUnlockedCells = attr.Value == "1" || attr.Value == "true"
				}
			}
			facts.Protection[sheetName] = prot
		}
	}
	if hyperlinks > 0 {
		facts.Hyperlinks[sheetName] = hyperlinks
	}
}

// findDrawingTarget returns the drawing part target of a worksheet, if any.
func findDrawingTarget(relsXML []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(relsXML)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var target, relType string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Target":
					target = attr.Value
				case "Type":
					relType = attr.Value
				}
			}
			if strings.Contains(strings.ToLower(relType), "drawing") {
				return target
			}
		}
	}
	return ""
}

// countChartRefs counts chart references in a drawing part.
func countChartRefs(drawingXML []byte) int {
	decoder := xml.NewDecoder(strings.NewReader(string(drawingXML)))
	count := 0
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			count++
		}
	}
	return count
}

// resolvePackagePath turns a relationship target into an archive entry
// path relative to base, collapsing "../" segments.
func resolvePackagePath(target, base string) string {
	target = strings.TrimPrefix(target, "/")
	for strings.HasPrefix(target, "../") {
		target = strings.TrimPrefix(target, "../")
		if idx := strings.LastIndex(base, "/"); idx >= 0 {
			base = base[:idx]
		}
	}
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return base + "/" + target
}
