package conversation

const languageMenuText = "Выбери, пожалуйста, язык / Please select a language"

// copyText holds the localized texts of every screen.
type copyText struct {
	Misunderstanding string
	ClickButton      string

	MainMenu          string
	ImpressionButton  string
	CertificateButton string
	FaqButton         string
	BackToMainMenu    string
	ThanksMainMenu    string

	Categories        string
	CategoryButtons   map[string]string
	UnclearCategory   string
	CategoryTitles    map[string]string
	ImpressionsHint   string
	NoImpressions     string
	BackToCategories  string
	UnclearImpression string

	ChosenImpression   string
	ReceivingQuestion  string
	GiftBoxButton      string
	EmailButton        string
	OtherImpression    string
	UnclearReceiving   string
	EmailPrompt        string
	EmailError         string
	PrivacyIntro       string
	PrivacyLink        string
	AcquaintedButton   string
	FullNamePrompt     string
	FullNameError      string
	PhonePrompt        string
	PhoneError         string
	Entered            string
	IsRight            string
	RightButton        string
	CorrectButton      string
	UnclearCustomer    string
	UnclearRecipient   string
	Correction         string
	PaymentIntro       string
	PaymentOutro       string
	NotScreenshot      string
	PurchaseThanks     string
	DeliveryQuestion   string
	CourierButton      string
	SelfDeliveryButton string
	UnclearDelivery    string
	RecipientPrompt    string
	RecipientError     string
	ContactPrompt      string
	ContactError       string
	RecipientCustomer  string
	Booked             string
	SelfDeliveryFormat string
	SuitsMeButton      string
	BackToDelivery     string

	CertificateCongrats string
	CertificatePrompt   string
	GoodCertificate     string
	WrongCertificate    string
	WrongCertificateTip string
	EnterAgainButton    string
	CallPersonButton    string
	CallingPerson       string

	FaqHint  string
	FaqEmpty string
}

var copies = map[Language]*copyText{
	LanguageRu: {
		Misunderstanding: "Извини, непонятно, что ты хочешь выбрать. Попробуй ещё раз.\n\n",
		ClickButton:      "Извини, непонятно, что ты хочешь выбрать. Нажми на кнопку.\n\n",

		MainMenu:          "Выбери, пожалуйста, что ты хочешь сделать",
		ImpressionButton:  "Выбрать впечатление",
		CertificateButton: "Активировать сертификат",
		FaqButton:         "F.A.Q. и поддержка",
		BackToMainMenu:    "« Вернуться в главное меню",
		ThanksMainMenu:    "Спасибо 👌, вернуться в главное меню",

		Categories: "Для твоего удобства мы разделили подарки по нескольким категориям:\n\n",
		CategoryButtons: map[string]string{
			CategoryMan:    "Для мужчин",
			CategoryGirl:   "Для девушек",
			CategoryCouple: "Для пар",
			CategoryAll:    "Посмотреть все",
		},
		UnclearCategory: "Извини, непонятно, какую категорию впечатлений ты хочешь выбрать. Попробуй ещё раз.\n\n",
		CategoryTitles: map[string]string{
			CategoryMan:    "Это лучшие подарки для мужчин на Бали🔥",
			CategoryGirl:   "Это лучшие подарки для девушек на Бали 😍",
			CategoryCouple: "Эти подарки идеально подходят для пар ♥",
		},
		ImpressionsHint: "Нажимай на впечатление, чтобы прочитать о нём подробнее.\n" +
			"Когда выберешь подходящее, отправь боту его номер, чтобы перейти к покупке.\n\n",
		NoImpressions:     "Извини, впечатлений пока нет.\n",
		BackToCategories:  "‹  Вернуться к выбору категории",
		UnclearImpression: "Извини, непонятно, какое впечатление ты хочешь выбрать. Попробуй ещё раз.\n\n",

		ChosenImpression:  "Отличный выбор! Ты выбрал(а) сертификат:\n",
		ReceivingQuestion: "\n\nВ какой форме хочешь получить его?",
		GiftBoxButton:     "🎁 Сертификат в коробке",
		EmailButton:       "💌 Электронный сертификат",
		OtherImpression:   "‹ Выбрать другое впечатление",
		UnclearReceiving:  "Извини, непонятно, какой способ получения сертификата ты хочешь выбрать. Попробуй ещё раз.\n\n",
		EmailPrompt:       "Напиши почту, на которую хотел(а) бы получить сертификат:",
		EmailError:        "Ошибка в написании электронной почты.\nПожалуйста, пришли нам свой адрес электронной почты:",
		PrivacyIntro:      "Спасибо, записали 👌\n\nПожалуйста, ознакомься с ",
		PrivacyLink:       "Политикой конфиденциальности и положением об обработке персональных данных 📇",
		AcquaintedButton:  "Ознакомлен(а)",
		FullNamePrompt:    "Введи, пожалуйста, свои фамилию и имя (кириллицей):",
		FullNameError:     "Ошибка в написании фамилии и имени.\nПожалуйста, пришли нам фамилию и имя (кириллицей):",
		PhonePrompt:       "Оставь, пожалуйста, свой контактный номер телефона:",
		PhoneError:        "Введён некорректный номер телефона.\nПожалуйста, пришли нам свой номер телефона:",
		Entered:           "Ты ввел(а):\n",
		IsRight:           "Всё верно?",
		RightButton:       "Да, верно",
		CorrectButton:     "Исправить данные",
		UnclearCustomer: "Извини, непонятно, подтверждаешь ли ты, что верно ввёл свои ФИО и номер телефона.\n" +
			"Нужно нажать на соответствующую кнопку.\n\n",
		UnclearRecipient: "Извини, непонятно, подтверждаешь ли ты, что верно ввёл имя и контакт получателя.\n" +
			"Нужно нажать на соответствующую кнопку.\n\n",
		Correction:     "Исправление данных:",
		PaymentIntro:   "Оплатить покупку можно по указанным реквизитам:\n\n",
		PaymentOutro:   "\n\nПосле оплаты отправь нам скриншот с подтверждением оплаты:",
		NotScreenshot:  "Ты прислал не скриншот оплаты.\n\n",
		PurchaseThanks: "Спасибо за покупку! Мы всё проверим и в ближайшее время тебе напишет оператор 🎆",
		DeliveryQuestion: "Спасибо!\nПодскажи, как тебе удобнее получить сертификат\n\n" +
			"Пункт самовывоза находится на Буките\n\nСтоимость доставки зависит от района",
		CourierButton:      "Доставка курьером",
		SelfDeliveryButton: "Самовывоз",
		UnclearDelivery:    "Извини, непонятно, какой способ доставки ты хочешь выбрать. Попробуй ещё раз.\n\n",
		RecipientPrompt:    "Введи имя получателя (кириллицей):",
		RecipientError:     "Ошибка в написании имени.\nПожалуйста, пришли нам имя (кириллицей):",
		ContactPrompt:      "Как нам связаться с получателем?\n\nНапиши номер в WhatsApp или ник в Telegram:",
		ContactError:       "Ошибка в присланных контактах.\nПожалуйста, пришли нам номер в WhatsApp или ник в Telegram:",
		RecipientCustomer:  "Получателем является заказчик",
		Booked:             "Мы забронировали сертификат ✨\n\nВ ближайшее время тебе напишет оператор",
		SelfDeliveryFormat: "Самовывоз доступен по адресу:\n%s\n\nЧасы работы:\n%s",
		SuitsMeButton:      "Мне подходит",
		BackToDelivery:     "‹ Назад к способам доставки",

		CertificateCongrats: "Поздравляем - близкий человек подарил тебе прекрасные впечатления!\n" +
			"Окунёмся в мир невероятных эмоций?\n\n",
		CertificatePrompt: "Введи ID сертификата, чтобы активировать его:",
		GoodCertificate: "Твое впечатление это -\n%s\nПрекрасный выбор!\n\n" +
			"В течение часа с тобой свяжется оператор\nи расскажет все детали.\nДо скорых встреч ✋",
		WrongCertificate: "Что-то пошло не так\n",
		WrongCertificateTip: "Проверь, пожалуйста, правильно ли ты ввел(а) ID и действителен ли срок действия сертификата\n\n" +
			"Если тебе нужна помощь, нажми кнопку \"Позвать человека\"",
		EnterAgainButton: "Ввести ID снова",
		CallPersonButton: "Позвать человека",
		CallingPerson:    "Спасибо за обращение, поддержка ответит в ближайшее время",

		FaqHint:  "Нажми на вопрос, чтобы прочитать ответ на него.\n\n",
		FaqEmpty: "Извини, FAQ пока пусто.\n\n",
	},
	LanguageEn: {
		Misunderstanding: "Sorry, it's not clear what you want to choose. Try again.\n\n",
		ClickButton:      "Sorry, it's not clear what you want to choose. Click on the button.\n\n",

		MainMenu:          "Please choose what you want to do",
		ImpressionButton:  "Select Impression",
		CertificateButton: "Activate Certificate",
		FaqButton:         "F.A.Q. and Support",
		BackToMainMenu:    "« Back to main menu",
		ThanksMainMenu:    "Thanks 👌, back to the main menu",

		Categories: "For your convenience, we have divided gifts into several categories:\n\n",
		CategoryButtons: map[string]string{
			CategoryMan:    "For Men",
			CategoryGirl:   "For Girls",
			CategoryCouple: "For Couples",
			CategoryAll:    "View All",
		},
		UnclearCategory: "Sorry, it's not clear which impressions category you want to choose. Try again.\n\n",
		CategoryTitles: map[string]string{
			CategoryMan:    "These are the best gifts for men in Bali🔥",
			CategoryGirl:   "These are the best gifts for girls in Bali 😍",
			CategoryCouple: "These are perfect gifts for couples ♥",
		},
		ImpressionsHint: "Click on an impression to read more about it.\n" +
			"When you choose the right one, send the bot its number to proceed to purchase.\n\n",
		NoImpressions:     "Sorry, no impressions yet.\n",
		BackToCategories:  "‹  Back to category selection",
		UnclearImpression: "Sorry, it's not clear which impression you want to choose. Try again.\n\n",

		ChosenImpression:  "Great choice! You chose the certificate:\n",
		ReceivingQuestion: "\n\nIn what form do you want to receive it?",
		GiftBoxButton:     "🎁 Certificate in a box",
		EmailButton:       "💌 Electronic certificate",
		OtherImpression:   "‹ Choose a different impression",
		UnclearReceiving:  "Sorry, it's not clear which method of receiving your certificate you want to choose. Try again.\n\n",
		EmailPrompt:       "Write the email to which you would like to receive the certificate:",
		EmailError:        "Email spelling error.\nPlease send us your email:",
		PrivacyIntro:      "Thank you, we wrote it down 👌\n\nPlease read the ",
		PrivacyLink:       "Privacy Policy and the provisions on the processing of personal data 📇",
		AcquaintedButton:  "Acquainted",
		FullNamePrompt:    "Please write your first and last name:",
		FullNameError:     "First and last name spelling error.\nPlease send us the first and last name:",
		PhonePrompt:       "Please write your contact phone number:",
		PhoneError:        "Phone number spelling error.\nPlease send us your phone number:",
		Entered:           "Here's what you entered:\n",
		IsRight:           "Is that right?",
		RightButton:       "Yes, that's right",
		CorrectButton:     "Correct the data",
		UnclearCustomer: "Sorry, it's not clear if you are confirming that you have entered your full name and phone number correctly.\n" +
			"You need to click the appropriate button.\n\n",
		UnclearRecipient: "Sorry, it's not clear if you are confirming that you have entered the recipient's name and contact correctly.\n" +
			"You need to click the appropriate button.\n\n",
		Correction:     "Correction of data:",
		PaymentIntro:   "You can pay for the purchase by the specified details:\n\n",
		PaymentOutro:   "\n\nAfter payment, send us a screenshot with payment confirmation:",
		NotScreenshot:  "You didn't send a screenshot of the payment\n\n",
		PurchaseThanks: "Thank you for your purchase! We will check everything and an operator will write to you shortly 🎆",
		DeliveryQuestion: "Thank you!\nTell me how you can get the certificate\n\n" +
			"The self-delivery point is on Bukit.\n\nDelivery cost depends on the neighbourhood",
		CourierButton:      "Courier delivery",
		SelfDeliveryButton: "Self-delivery",
		UnclearDelivery:    "Sorry, it's not clear which delivery method you want to choose. Try again.\n\n",
		RecipientPrompt:    "Please write the recipient name:",
		RecipientError:     "Name spelling error.\nPlease send us the name:",
		ContactPrompt:      "How do we contact the recipient?\n\nWrite the number in WhatsApp or nickname in Telegram:",
		ContactError:       "Error in spelling of contacts.\nPlease send us the number in WhatsApp or nickname in Telegram:",
		RecipientCustomer:  "The recipient is the customer",
		Booked:             "We've booked the certificate ✨\n\nAn operator will write to you shortly",
		SelfDeliveryFormat: "Self-collection is available at the address:\n%s\n\nOpening hours:\n%s",
		SuitsMeButton:      "It works for me",
		BackToDelivery:     "‹ Back to delivery methods",

		CertificateCongrats: "Congratulations - a loved one has given you a wonderful experience!\n" +
			"Let's dive into the world of incredible emotions?\n\n",
		CertificatePrompt: "Write your certificate ID to activate it:",
		GoodCertificate: "Your impression is\n%s\nExcellent choice!\n\n" +
			"An operator will contact you within an hour\nwith all the details.\nSee you soon ✋",
		WrongCertificate: "Something went wrong\n",
		WrongCertificateTip: "Please check if you have entered the ID correctly and if the certificate expiry date is valid\n\n" +
			"If you need help, click the \"Call Person\" button",
		EnterAgainButton: "Enter ID again",
		CallPersonButton: "Call Person",
		CallingPerson:    "Thank you for contacting us, support will respond shortly",

		FaqHint:  "Click on a question to read the answer to it.\n\n",
		FaqEmpty: "Sorry, the FAQ is empty for now.\n\n",
	},
}

// copyFor panics on an unset language; the dispatcher refuses to run
// localized handlers before one is chosen.
func copyFor(lang Language) *copyText {
	c, ok := copies[lang]
	if !ok {
		panic("conversation: no copy for language " + string(lang))
	}
	return c
}
