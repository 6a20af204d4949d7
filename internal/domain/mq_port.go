package domain

type Message struct {
	Key   []byte
	Value []byte
}

type Publisher interface {
	Publish(topic string, msgs ...Message) error
}

type Subscriber interface {
	Subscribe(topic, groupID string) (<-chan Message, error)
}
