package config

import "github.com/KirkDiggler/simulacrum/internal/entities/simulacrum"

var nodeTypeLabels = map[simulacrum.NodeType]string{
	simulacrum.NodeTypeDesktop:      "Desktop",
	simulacrum.NodeTypeServer:       "Server",
	simulacrum.NodeTypeDomain:       "Domain Controller",
	simulacrum.NodeTypeHypervisor:   "Hypervisor",
	simulacrum.NodeTypeNetworking:   "Networking",
	simulacrum.NodeTypeFirewall:     "Firewall",
	simulacrum.NodeTypeIDS:          "IDS/IPS",
	simulacrum.NodeTypeService:      "Service",
	simulacrum.NodeTypeStorage:      "Storage",
	simulacrum.NodeTypeApplication:  "Application",
	simulacrum.NodeTypeCloudStorage: "Cloud Storage",
	simulacrum.NodeTypeCloudService: "Cloud Service",
	simulacrum.NodeTypeCloudSystem:  "Cloud System",
}

var targetStatLabels = map[string]string{
	simulacrum.StatResilience:  "Resilience",
	simulacrum.StatInsight:     "Insight",
	simulacrum.StatSensitivity: "Sensitivity",
}

// Label is a display label for an enumerated value
type Label struct {
	Value string
	Label string
}

// NodeTypeLabels returns the node types with their display labels in
// display order. The result is a fresh slice the caller may keep.
func NodeTypeLabels() []Label {
	types := simulacrum.NodeTypes()
	out := make([]Label, 0, len(types))
	for _, t := range types {
		out = append(out, Label{Value: string(t), Label: nodeTypeLabels[t]})
	}
	return out
}

// NodeTypeLabel returns the display label of one node type, or the raw
// value when it is unknown
func NodeTypeLabel(t simulacrum.NodeType) string {
	if label, ok := nodeTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// TargetStatLabels returns the stats a skill or tool can target
func TargetStatLabels() []Label {
	return []Label{
		{Value: simulacrum.StatResilience, Label: targetStatLabels[simulacrum.StatResilience]},
		{Value: simulacrum.StatInsight, Label: targetStatLabels[simulacrum.StatInsight]},
		{Value: simulacrum.StatSensitivity, Label: targetStatLabels[simulacrum.StatSensitivity]},
	}
}
