package services

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"gameforum/internal/models"
	"gameforum/internal/utils"

	"go.uber.org/zap"
)

// SamplePassword is the password of every seeded account.
const SamplePassword = "password123"

type sampleUser struct {
	username   string
	email      string
	registered string
}

type sampleTopic struct {
	author   int
	title    string
	content  string
	category models.Category
	tags     []string
	likedBy  []int
}

var sampleUsers = []sampleUser{
	{"EliteGamer", "elite@example.com", "2022-01-05T10:00:00Z"},
	{"GameEnthusiast", "enthusiast@example.com", "2022-02-14T14:30:00Z"},
	{"ДревнийГеймер", "ancient@example.com", "2022-03-22T09:15:00Z"},
	{"ИндиЛюбитель", "indie@example.com", "2022-04-18T16:45:00Z"},
	{"IndustryAnalyst", "analyst@example.com", "2022-05-07T11:20:00Z"},
	{"TechGamer", "tech@example.com", "2022-06-30T08:10:00Z"},
	{"ТехноАналитик", "techanalyst@example.com", "2022-07-12T13:40:00Z"},
	{"ВиртуальныйГеймер", "virtual@example.com", "2022-08-25T15:30:00Z"},
	{"SetupKing", "setup@example.com", "2022-09-09T10:50:00Z"},
	{"SnackAttack", "snack@example.com", "2022-10-17T12:25:00Z"},
}

var sampleTopics = []sampleTopic{
	{0, "The Last of Us Part II: A Masterpiece or Overrated?",
		"I just finished The Last of Us Part II and I'm not sure how to feel about it. The gameplay was amazing but the story was quite divisive. What are your thoughts?",
		models.CategoryGames, []string{"TLOU2", "PS4", "Naughty Dog"}, []int{1, 2, 3}},
	{1, "Most anticipated games of the year?",
		"With so many games coming out this year, which ones are you most excited about? I'm looking forward to **Starfield** and *Hogwarts Legacy*.",
		models.CategoryGames, []string{"Upcoming", "AAA"}, []int{0, 2}},
	{2, "Elden Ring: сложность как недостаток или преимущество?",
		"Недавно начал играть в Elden Ring и был поражен уровнем сложности. Делает ли высокая сложность игру лучше или отпугивает новых игроков?",
		models.CategoryGames, []string{"Elden Ring", "FromSoftware", "Соулслайк"}, []int{0, 3, 4, 5}},
	{3, "Лучшие инди-игры прошлого года",
		"Поделитесь любимыми инди-играми. Я открыл для себя Stray и Cult of the Lamb, обе просто потрясающие!",
		models.CategoryGames, []string{"Инди", "Stray"}, []int{1}},
	{4, "Microsoft buying Activision Blizzard: good or bad for gaming?",
		"How do you think the acquisition will change the industry? More exclusives or better games overall?",
		models.CategoryIndustry, []string{"Microsoft", "Activision", "Acquisition"}, []int{0, 2, 6}},
	{5, "The growth of cloud gaming services",
		"Cloud gaming keeps growing with Xbox Cloud Gaming and GeForce Now. Have you tried any of them and how did it go?",
		models.CategoryIndustry, []string{"Cloud Gaming", "Xbox", "GeForce Now"}, []int{4}},
	{6, "Как санкции влияют на игровую индустрию",
		"Какое долгосрочное влияние окажут санкции на разработку игр? Есть ли у разработчиков шанс на мировой успех?",
		models.CategoryIndustry, []string{"Разработка", "Индустрия"}, []int{7, 8}},
	{7, "Перспективы VR технологий",
		"Meta Quest доминирует на рынке VR, но Sony выпустила PS VR2. Станет ли этот год переломным для виртуальной реальности?",
		models.CategoryIndustry, []string{"VR", "Meta Quest", "PSVR"}, []int{6, 9}},
	{8, "Best gaming setups - share yours!",
		"I recently upgraded my setup with a new desk and monitor. Show me yours so I can get some inspiration.",
		models.CategoryOfftopic, []string{"Setup", "Battlestation"}, []int{1, 3, 5}},
	{9, "Favorite gaming snacks?",
		"What are everyone's go-to gaming snacks? I can't play without chips and energy drinks.",
		models.CategoryOfftopic, []string{"Food", "Snacks"}, []int{0, 2}},
	{0, "Любимые фильмы по мотивам видеоигр",
		"Недавно посмотрел фильм по Uncharted и он мне понравился. Какие экранизации игр вы считаете удачными?",
		models.CategoryOfftopic, []string{"Фильмы", "Экранизации"}, []int{5, 9}},
	{3, "Как сохранять здоровье при долгих игровых сессиях?",
		"После нескольких часов игры болит спина и устают глаза. Какие у вас есть советы?",
		models.CategoryOfftopic, []string{"Здоровье", "Эргономика", "Советы"}, []int{1, 6, 8}},
}

var sampleReplies = map[bool][]string{
	false: {
		"Great topic for discussion, thanks for posting!",
		"I agree with the author, really interesting perspective.",
		"Hmm, not sure I agree. My experience has been quite different.",
		"Have you tried looking at this issue from another angle?",
		"Excellent analysis of the situation, makes a lot more sense now.",
	},
	true: {
		"Отличная тема для обсуждения, спасибо за пост!",
		"Я согласен с автором, действительно интересная точка зрения.",
		"Хмм, не уверен, что соглашусь. Мой опыт совершенно другой.",
		"А вы пробовали смотреть на эту проблему с другой стороны?",
		"Отличный анализ ситуации, многое стало понятнее.",
	},
}

var cyrillic = regexp.MustCompile(`[А-яЁё]`)

func sampleUserID(i int) string {
	return fmt.Sprintf("user%d", i+1)
}

// Seed fills an empty forum with sample users, topics and comments. Users are
// only added when the directory is empty. Topics are only added together with
// those users and when there are none, so sample authors always exist.
// Every counter is derived from the generated records.
func (s *ForumService) Seed(ctx context.Context, rng *rand.Rand) error {
	seedUsers := s.auth.CountUsers() == 0

	s.mu.Lock()
	defer s.mu.Unlock()

	seedTopics := seedUsers && len(s.topics) == 0
	if !seedUsers && !seedTopics {
		return nil
	}

	now := s.clock()
	var topics []models.Topic
	var comments []models.Comment
	if seedTopics {
		topics, comments = generateSampleContent(rng, now)
		s.topics = topics
		s.comments = comments
		if err := s.saveTopics(ctx); err != nil {
			return err
		}
		if err := s.saveComments(ctx); err != nil {
			return err
		}
	}

	if seedUsers {
		users, err := generateSampleUsers(topics, comments)
		if err != nil {
			return models.NewInternalError(err)
		}
		if err := s.auth.seedUsers(ctx, users); err != nil {
			return err
		}
	}

	s.log.Info("sample data seeded",
		zap.Bool("users", seedUsers),
		zap.Int("topics", len(topics)),
		zap.Int("comments", len(comments)))
	return nil
}

func generateSampleContent(rng *rand.Rand, now time.Time) ([]models.Topic, []models.Comment) {
	topics := make([]models.Topic, 0, len(sampleTopics))
	comments := make([]models.Comment, 0)

	for i, st := range sampleTopics {
		author := sampleUsers[st.author]
		created := now.AddDate(0, 0, -(rng.Intn(30) + 1))
		topic := models.Topic{
			ID:         fmt.Sprintf("sample-%d", i+1),
			Title:      st.title,
			Content:    st.content,
			UserID:     sampleUserID(st.author),
			Username:   author.username,
			UserAvatar: sampleAvatar(st.author),
			Category:   st.category,
			Tags:       append([]string{}, st.tags...),
			CreatedAt:  created,
			Views:      rng.Intn(500),
			Likes:      make([]string, 0, len(st.likedBy)),
		}
		for _, u := range st.likedBy {
			topic.Likes = append(topic.Likes, sampleUserID(u))
		}

		replies := rng.Intn(5) + 1
		for j := 0; j < replies; j++ {
			u := rng.Intn(len(sampleUsers))
			name := sampleUsers[u].username
			pool := sampleReplies[cyrillic.MatchString(name)]
			offset := time.Duration(rng.Int63n(int64(now.Sub(created))))
			comments = append(comments, models.Comment{
				ID:         fmt.Sprintf("comment-%s-%d", topic.ID, j),
				TopicID:    topic.ID,
				UserID:     sampleUserID(u),
				Username:   name,
				UserAvatar: sampleAvatar(u),
				Content:    pool[rng.Intn(len(pool))],
				CreatedAt:  created.Add(offset),
				Likes:      []string{},
			})
		}
		topic.CommentsCount = replies
		topics = append(topics, topic)
	}
	return topics, comments
}

func generateSampleUsers(topics []models.Topic, comments []models.Comment) ([]models.User, error) {
	hash, err := utils.HashPassword(SamplePassword)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, len(sampleUsers))
	byID := make(map[string]*models.User, len(sampleUsers))
	for i, su := range sampleUsers {
		registered, err := time.Parse(time.RFC3339, su.registered)
		if err != nil {
			return nil, err
		}
		users[i] = models.User{
			ID:               sampleUserID(i),
			Username:         su.username,
			Email:            su.email,
			PasswordHash:     hash,
			Avatar:           sampleAvatar(i),
			RegistrationDate: registered,
		}
		byID[users[i].ID] = &users[i]
	}

	for _, t := range topics {
		if u, ok := byID[t.UserID]; ok {
			u.TopicsCount++
			u.LikesReceived += len(t.Likes)
		}
	}
	for _, c := range comments {
		if u, ok := byID[c.UserID]; ok {
			u.CommentsCount++
		}
	}
	return users, nil
}

func sampleAvatar(i int) string {
	return fmt.Sprintf("https://i.pravatar.cc/150?img=%d", i+1)
}
