package deployments

// Capability enum
type Capability string

const (
	CapabilityEmbeddings     Capability = "embeddings"
	CapabilityChatCompletion Capability = "chat-completion"
	CapabilityUnclassified   Capability = "unclassified"
)

// raw capability keys as reported by the management plane
const (
	rawEmbeddings     = "embeddings"
	rawChatCompletion = "chatCompletion"
)

// Deployment is a named, versioned model instance hosted under an account.
// Account holds the owning account name, not a reference to it.
type Deployment struct {
	ID         string     `json:"id"`
	Capability Capability `json:"type"`
	Model      string     `json:"model"`
	Version    string     `json:"version"`
	Account    string     `json:"account"`
}

func (d Deployment) IsChat() bool { return d.Capability == CapabilityChatCompletion }

// Classify maps a raw capability set to a Capability.
// First match wins: embeddings, then chatCompletion, then unclassified.
func Classify(capabilities map[string]string) Capability {
	if _, ok := capabilities[rawEmbeddings]; ok {
		return CapabilityEmbeddings
	}
	if _, ok := capabilities[rawChatCompletion]; ok {
		return CapabilityChatCompletion
	}
	return CapabilityUnclassified
}

// ChatDeployments keeps chat-completion deployments, in discovery order.
// A non-empty modelFamily additionally requires an exact model name match.
func ChatDeployments(list []Deployment, modelFamily string) []Deployment {
	var out []Deployment
	for _, d := range list {
		if !d.IsChat() {
			continue
		}
		if modelFamily != "" && d.Model != modelFamily {
			continue
		}
		out = append(out, d)
	}
	return out
}
