package wellknown

import (
	"bytes"
	"encoding/csv"
	"io"
	"log"
	"strconv"
	"strings"

	_ "embed"

	"firewall-rule-generator/internal/model"
)

//go:embed protocols.csv
var protocolsData string

// Fallback port used when a requested protocol is not in the catalog.
const DefaultPort = 80

type ServiceEntry struct {
	Name      string // canonical spelling, e.g. "PostgreSQL"
	Transport model.Transport
	Port      int
}

var (
	serviceRegistry map[string]ServiceEntry
	serviceOrder    []string
)

func init() {
	serviceRegistry = make(map[string]ServiceEntry)
	reader := csv.NewReader(bytes.NewBufferString(protocolsData))
	reader.TrimLeadingSpace = true
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Fatalf("Failed to read header from embedded protocols.csv: %v", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to parse embedded protocols.csv: %v", err)
		}
		if len(record) < 3 {
			continue
		}

		port, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}

		name := strings.TrimSpace(record[0])
		transport := model.Transport(strings.ToLower(strings.TrimSpace(record[2])))
		if name == "" || (transport != model.TCP && transport != model.UDP) {
			continue
		}

		key := strings.ToUpper(name)
		if _, dup := serviceRegistry[key]; dup {
			continue
		}
		serviceRegistry[key] = ServiceEntry{Name: name, Transport: transport, Port: port}
		serviceOrder = append(serviceOrder, name)
	}
}

// GetService returns the catalog entry for a protocol name, ignoring case.
func GetService(name string) (ServiceEntry, bool) {
	entry, ok := serviceRegistry[strings.ToUpper(strings.TrimSpace(name))]
	return entry, ok
}

// Canonical returns the catalog spelling of name, or name unchanged when it is not catalogued.
func Canonical(name string) string {
	if entry, ok := GetService(name); ok {
		return entry.Name
	}
	return name
}

// PortOrDefault resolves the port for name, falling back to DefaultPort.
func PortOrDefault(name string) int {
	if entry, ok := GetService(name); ok {
		return entry.Port
	}
	return DefaultPort
}

// Names lists catalog protocols in file order.
func Names() []string {
	out := make([]string, len(serviceOrder))
	copy(out, serviceOrder)
	return out
}
